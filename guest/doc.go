// Package guest places vector buffers in the linear memory of a wazero
// WebAssembly instance.
//
// A guest reads a vector with plain loads: element i starts at
// ptr + i*ElementSize()*4, fields sit at their layout word offsets, and the
// last two words of the region hold capacity and length.
//
// Three ways to share a vector:
//
//   - Define with a Source: every buffer of the type is allocated through
//     the guest's allocator, and Source.Locate gives the guest address of
//     a vector's current buffer. Resizes move it, so locate again after
//     any growing or shrinking call.
//   - Export: copy a host vector into guest memory once.
//   - Attach: wrap a buffer the guest already holds, without copying.
//
// Usage:
//
//	realloc := guest.WrapAllocator(ctx, mod.ExportedFunction("cabi_realloc"))
//	src := guest.NewSource(mod.ExportedMemory("memory"), realloc)
//	points, err := guest.Define(schema.Def{"x": "numeric", "y": "numeric"}, src)
//	v, err := points.New()
//	ptr, size, _ := src.Locate(v.Memory())
//
// Guest allocation events go to a zap logger that is a no-op until
// SetLogger is called. Set it once during setup, before the first Define.
package guest
