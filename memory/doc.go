// Package memory provides the word buffer behind a struct vector and the
// allocator that grows and shrinks it.
//
// # Buffer Layout
//
// A buffer is a flat run of little-endian 32-bit words:
//
//	┌──────────┬──────────┬─────┬──────────────┬──────────┬────────┐
//	│ slot 0   │ slot 1   │ ... │ slot cap-1   │ capacity │ length │
//	│ es words │ es words │     │ es words     │ 1 word   │ 1 word │
//	└──────────┴──────────┴─────┴──────────────┴──────────┴────────┘
//
// Every word can be read as uint32, int32 or float32. The views alias: a
// float written with SetF32 is visible bit-for-bit through U32 and I32.
//
// # Growth Policy
//
//	Grow(n)        no-op if length+n fits, else capacity*2, or
//	               length+n+GrowSlack when doubling is not enough
//	MaybeShrink    if capacity-length > ShrinkThreshold, shrink to
//	               length+ShrinkThreshold
//	ShrinkTo(s)    shrink to length+max(s,0) if smaller than capacity
//
// Defaults (DefaultConfig): ShrinkThreshold 50, DefaultCapacity 15,
// GrowSlack 15.
//
// # Storage Sources
//
// The Allocator draws bytes from a Source. HeapSource allocates Go slices
// and fails with an allocation error above MaxBytes. Other sources, such as
// guest.Source, place buffers in WebAssembly linear memory.
//
// # Aliasing
//
// Wrap turns existing bytes into a Buffer without copying, so two buffers
// may share storage. Resizing always moves data into new storage and frees
// the old one: aliases of the old storage are not updated. Re-fetch shared
// memory after any operation that may resize.
//
// # Thread Safety
//
// Allocator is safe for concurrent use if its Source is. Buffer is not
// synchronized; concurrent writers must partition the element range.
//
// # Logging
//
// Allocation failures log at warn level and resizes at debug level through
// a zap logger that is a no-op until SetLogger is called. Set it once
// during setup, before vectors are created or Partition workers start.
package memory
