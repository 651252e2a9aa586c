package vec

import (
	"iter"

	"github.com/wippyai/structvec/errors"
)

// Traversals move the attached cursor over the elements and put it back
// where it was when they return. Callbacks receive that cursor; use
// Cursor.Ref to keep a position past the callback.

func (v *Vec) traverse(fn func(c *Cursor, i int) bool) {
	saved := v.cursor.offset
	defer func() { v.cursor.offset = saved }()

	for i := 0; i < v.Len(); i++ {
		if !fn(v.cursor.Index(i), i) {
			return
		}
	}
}

func (v *Vec) traverseBackward(fn func(c *Cursor, i int) bool) {
	saved := v.cursor.offset
	defer func() { v.cursor.offset = saved }()

	for i := v.Len() - 1; i >= 0; i-- {
		if !fn(v.cursor.Index(i), i) {
			return
		}
	}
}

// All iterates over index and cursor pairs.
//
//	for i, c := range v.All() {
//		fmt.Println(i, c.Record())
//	}
func (v *Vec) All() iter.Seq2[int, *Cursor] {
	return func(yield func(int, *Cursor) bool) {
		v.traverse(func(c *Cursor, i int) bool {
			return yield(i, c)
		})
	}
}

// ForEach calls fn for every element in order.
func (v *Vec) ForEach(fn func(c *Cursor, i int)) {
	v.traverse(func(c *Cursor, i int) bool {
		fn(c, i)
		return true
	})
}

// Map collects fn's result for every element.
func Map[T any](v *Vec, fn func(c *Cursor, i int) T) []T {
	out := make([]T, 0, v.Len())
	v.ForEach(func(c *Cursor, i int) {
		out = append(out, fn(c, i))
	})
	return out
}

// MapV copies v and calls fn on every element of the copy; fn mutates the
// copy through the cursor it receives. The first error aborts and is
// returned.
func (v *Vec) MapV(fn func(c *Cursor, i int) error) (*Vec, error) {
	nv, err := v.Clone()
	if err != nil {
		return nil, err
	}
	nv.traverse(func(c *Cursor, i int) bool {
		err = fn(c, i)
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return nv, nil
}

// Filter returns the records of the elements fn accepts.
func (v *Vec) Filter(fn func(c *Cursor, i int) bool) []Record {
	var out []Record
	v.traverse(func(c *Cursor, i int) bool {
		if fn(c, i) {
			out = append(out, c.Record())
		}
		return true
	})
	return out
}

// Find returns the record of the first element fn accepts.
func (v *Vec) Find(fn func(c *Cursor, i int) bool) (Record, bool) {
	var found Record
	v.traverse(func(c *Cursor, i int) bool {
		if fn(c, i) {
			found = c.Record()
			return false
		}
		return true
	})
	return found, found != nil
}

// FindIndex returns the index of the first element fn accepts, or -1.
func (v *Vec) FindIndex(fn func(c *Cursor, i int) bool) int {
	idx := -1
	v.traverse(func(c *Cursor, i int) bool {
		if fn(c, i) {
			idx = i
			return false
		}
		return true
	})
	return idx
}

// LastIndexOf returns the index of the last element fn accepts, or -1.
func (v *Vec) LastIndexOf(fn func(c *Cursor, i int) bool) int {
	idx := -1
	v.traverseBackward(func(c *Cursor, i int) bool {
		if fn(c, i) {
			idx = i
			return false
		}
		return true
	})
	return idx
}

// Every reports whether fn accepts all elements. It is true for an empty vector.
func (v *Vec) Every(fn func(c *Cursor, i int) bool) bool {
	all := true
	v.traverse(func(c *Cursor, i int) bool {
		all = fn(c, i)
		return all
	})
	return all
}

// Some reports whether fn accepts at least one element.
func (v *Vec) Some(fn func(c *Cursor, i int) bool) bool {
	return v.FindIndex(fn) >= 0
}

// Reduce folds the elements from first to last. Exactly one initial value
// must be given; otherwise Reduce fails with an argument error.
func Reduce[T any](v *Vec, fn func(acc T, c *Cursor, i int) T, initial ...T) (T, error) {
	if len(initial) != 1 {
		var zero T
		return zero, errors.Argument("reduce", "exactly one initial value is required")
	}
	acc := initial[0]
	v.traverse(func(c *Cursor, i int) bool {
		acc = fn(acc, c, i)
		return true
	})
	return acc, nil
}

// ReduceRight folds the elements from last to first. Exactly one initial
// value must be given.
func ReduceRight[T any](v *Vec, fn func(acc T, c *Cursor, i int) T, initial ...T) (T, error) {
	if len(initial) != 1 {
		var zero T
		return zero, errors.Argument("reduceRight", "exactly one initial value is required")
	}
	acc := initial[0]
	v.traverseBackward(func(c *Cursor, i int) bool {
		acc = fn(acc, c, i)
		return true
	})
	return acc, nil
}
