// Package vec provides growable arrays of fixed-shape records packed into
// a single word buffer.
//
// # Types and Vectors
//
// A Type binds a compiled layout to an allocator and constructs vectors:
//
//	points, err := vec.Define(schema.Def{"x": "numeric", "y": "numeric", "hit": "boolean"})
//	v, err := points.New()
//	v.Push(vec.Record{"x": 1, "y": 2, "hit": true})
//
// Other constructors: NewWithCapacity, FromSlice, FromMemory (zero-copy
// alias of a buffer) and FromString (decode MarshalJSON text).
//
// # Cursors
//
// Field access goes through a Cursor, a word offset into the vector's
// buffer. Typed accessors take a schema.Field, so the hot path is a table
// lookup and a word read:
//
//	x, _ := points.Field("x")
//	c := v.At(0)
//	c.SetNumeric(x, c.Numeric(x)+1)
//
// Every vector owns one attached cursor, reused by At and by all bulk
// operations. Its position is not stable across calls. Ref returns a
// detached cursor that keeps its own position; it still reads live memory,
// not a snapshot.
//
// # Operations
//
//	Push, Pop, Shift, Unshift           ends of the vector
//	Splice, Slice, Concat               ranges (Splice/Slice/Concat return new vectors)
//	Sort, Swap, Reverse, CopyWithin, Fill
//	ForEach, All, Filter, Find, FindIndex, LastIndexOf, Every, Some, MapV
//	Map, Reduce, ReduceRight            generic package functions
//	Reserve, ShrinkTo                   capacity control
//
// Indices follow JavaScript array conventions: negatives count from the
// end and out-of-range ranges produce empty results rather than errors.
// Get, Set and Ref are the bounds-checked exceptions.
//
// Mutations check every record before they grow or write, so a failing
// call leaves the vector unchanged. Records must carry every field; extra
// keys are ignored.
//
// # Sharing Memory
//
// Memory returns the raw buffer (header included) and FromMemory or
// SetMemory wrap such bytes without copying, so several vectors, goroutines
// or a WebAssembly guest can share one buffer. Nothing is locked. Any call
// that grows or shrinks a vector moves it to new storage; other holders of
// the old bytes are not told and keep seeing the old buffer. Re-fetch
// Memory after such calls, and let only one owner resize.
//
// Partition runs workers over disjoint index ranges, the safe pattern for
// parallel writes.
package vec
