package vec

import (
	"github.com/wippyai/structvec/errors"
)

// Mutations validate every record before they grow or write anything, so a
// failed call leaves the vector as it was.

// Push appends items and returns the new length.
func (v *Vec) Push(items ...Record) (int, error) {
	if err := v.checkRecords(items); err != nil {
		return v.Len(), err
	}
	if err := v.Reserve(len(items)); err != nil {
		return v.Len(), err
	}
	length := v.Len()
	v.writeRecords(length, items)
	v.setLength(length + len(items))
	return v.Len(), nil
}

// Pop removes and returns the last element. It reports false on an empty vector.
func (v *Vec) Pop() (Record, bool) {
	length := v.Len()
	if length == 0 {
		return nil, false
	}
	r := v.readRecord(length - 1)
	v.setLength(length - 1)
	v.maybeShrink()
	return r, true
}

// Shift removes and returns the first element. It reports false on an empty vector.
func (v *Vec) Shift() (Record, bool) {
	length := v.Len()
	if length == 0 {
		return nil, false
	}
	r := v.readRecord(0)
	v.buf.MoveElements(0, 1, length-1)
	v.setLength(length - 1)
	v.maybeShrink()
	return r, true
}

// Unshift inserts items at the front, in order, and returns the new length.
func (v *Vec) Unshift(items ...Record) (int, error) {
	if len(items) == 0 {
		return v.Len(), nil
	}
	if err := v.checkRecords(items); err != nil {
		return v.Len(), err
	}
	if err := v.Reserve(len(items)); err != nil {
		return v.Len(), err
	}
	length := v.Len()
	v.buf.MoveElements(len(items), 0, length)
	v.writeRecords(0, items)
	v.setLength(length + len(items))
	return v.Len(), nil
}

// Splice removes deleteCount elements at start, inserts items in their
// place and returns the removed elements as a new vector.
//
// A negative start counts from the end. A start outside [0, Len()) leaves
// v untouched and returns an empty vector. deleteCount is clamped to
// [0, Len()-start]; pass math.MaxInt to delete through the end.
func (v *Vec) Splice(start, deleteCount int, items ...Record) (*Vec, error) {
	length := v.Len()
	if start < 0 {
		start += length
	}
	if start < 0 || start >= length {
		return v.typ.NewWithCapacity(0)
	}
	deleteCount = min(max(deleteCount, 0), length-start)

	if err := v.checkRecords(items); err != nil {
		return nil, err
	}

	removed, err := v.typ.NewWithCapacity(deleteCount)
	if err != nil {
		return nil, err
	}
	removed.buf.CopyElements(0, v.buf, start, deleteCount)
	removed.setLength(deleteCount)

	n := len(items)
	tail := start + deleteCount
	switch {
	case deleteCount == n:
		v.writeRecords(start, items)
	case deleteCount > n:
		v.writeRecords(start, items)
		v.buf.MoveElements(start+n, tail, length-tail)
		v.setLength(length - (deleteCount - n))
		v.maybeShrink()
	default:
		if err := v.Reserve(n - deleteCount); err != nil {
			return nil, err
		}
		v.buf.MoveElements(start+n, tail, length-tail)
		v.writeRecords(start, items)
		v.setLength(length + (n - deleteCount))
	}
	return removed, nil
}

// Slice returns a copy of elements [start, end). Negative indices count
// from the end. A range that falls outside [0, Len()] or is empty yields an
// empty vector.
func (v *Vec) Slice(start, end int) (*Vec, error) {
	length := v.Len()
	if start < 0 {
		start += length
	}
	if end < 0 {
		end += length
	}
	if start < 0 || end > length || start >= end {
		return v.typ.NewWithCapacity(0)
	}

	nv, err := v.typ.NewWithCapacity(end - start)
	if err != nil {
		return nil, err
	}
	nv.buf.CopyElements(0, v.buf, start, end-start)
	nv.setLength(end - start)
	return nv, nil
}

// SliceFrom returns a copy of elements [start, Len()).
func (v *Vec) SliceFrom(start int) (*Vec, error) {
	return v.Slice(start, v.Len())
}

// Sort orders the elements by compare, which returns a positive number
// when a belongs after b.
//
// Sort is a bubble sort that swaps element words through a scratch slot
// just past the last element, so it never allocates beyond reserving that
// slot. It stops after the first pass without swaps. Expect O(n²) compares
// on unsorted input.
func (v *Vec) Sort(compare func(a, b *Cursor) int) error {
	if err := v.Reserve(1); err != nil {
		return err
	}
	saved := v.cursor.offset
	defer func() { v.cursor.offset = saved }()

	length := v.Len()
	for end := length - 1; end > 0; end-- {
		swapped := false
		for i := 0; i < end; i++ {
			if compare(v.cursor.Index(i), v.scratch.Index(i+1)) > 0 {
				v.buf.SwapElements(i, i+1, length)
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}
	return nil
}

// Swap exchanges elements i and j. Negative indices count from the end;
// out-of-range indices make Swap a no-op.
func (v *Vec) Swap(i, j int) error {
	length := v.Len()
	if i < 0 {
		i += length
	}
	if j < 0 {
		j += length
	}
	if i < 0 || j < 0 || i >= length || j >= length || i == j {
		return nil
	}
	if err := v.Reserve(1); err != nil {
		return err
	}
	v.buf.SwapElements(i, j, length)
	return nil
}

// Reverse reverses the element order in place.
func (v *Vec) Reverse() error {
	length := v.Len()
	if length < 2 {
		return nil
	}
	if err := v.Reserve(1); err != nil {
		return err
	}
	for i, j := 0, length-1; i < j; i, j = i+1, j-1 {
		v.buf.SwapElements(i, j, length)
	}
	return nil
}

// CopyWithin copies elements [start, end) to target, like
// Array.prototype.copyWithin: negative indices count from the end, indices
// are clamped to [0, Len()] and the copy stops at the end of the vector.
func (v *Vec) CopyWithin(target, start, end int) *Vec {
	length := v.Len()
	to := relIndex(target, length)
	from := relIndex(start, length)
	final := relIndex(end, length)

	count := min(final-from, length-to)
	if count > 0 {
		v.buf.MoveElements(to, from, count)
	}
	return v
}

// Fill writes r into every element of [start, end) with CopyWithin's
// index rules.
func (v *Vec) Fill(r Record, start, end int) error {
	if err := v.checkRecord(r); err != nil {
		return err
	}
	length := v.Len()
	final := relIndex(end, length)
	for i := relIndex(start, length); i < final; i++ {
		v.writeRecord(i, r)
	}
	return nil
}

// Concat returns a new vector holding v's elements followed by those of
// others. All vectors must share v's layout.
func (v *Vec) Concat(others ...*Vec) (*Vec, error) {
	total := v.Len()
	for _, o := range others {
		if o == nil || !v.typ.layout.Equal(o.typ.layout) {
			return nil, errors.New(errors.PhaseRuntime, errors.KindTypeKind).
				Path("concat").
				Detail("vector layouts differ").
				Build()
		}
		total += o.Len()
	}

	nv, err := v.typ.NewWithCapacity(total)
	if err != nil {
		return nil, err
	}
	at := 0
	for _, src := range append([]*Vec{v}, others...) {
		nv.buf.CopyElements(at, src.buf, 0, src.Len())
		at += src.Len()
	}
	nv.setLength(total)
	return nv, nil
}

// relIndex resolves a possibly negative index against length and clamps
// it to [0, length].
func relIndex(i, length int) int {
	if i < 0 {
		return max(length+i, 0)
	}
	return min(i, length)
}
