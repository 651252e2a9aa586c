package vec

import (
	"bytes"

	"go.uber.org/zap"

	"github.com/wippyai/structvec/errors"
	"github.com/wippyai/structvec/memory"
	"github.com/wippyai/structvec/schema"
)

// Record is one element as a field name→value map. Getters produce float32
// for numeric, int32 for integer, bool for boolean and a one-rune string for
// character fields.
type Record map[string]any

// Vec is a growable array of fixed-shape records packed into one word
// buffer. Length and capacity live in the buffer header.
//
// A Vec is not safe for concurrent use. Several goroutines may work on
// disjoint index ranges of one buffer (see Partition) as long as nothing
// resizes it.
type Vec struct {
	typ     *Type
	buf     *memory.Buffer
	cursor  *Cursor
	scratch *Cursor
}

// Type returns the vector's element type.
func (v *Vec) Type() *Type {
	return v.typ
}

// Layout returns the element layout.
func (v *Vec) Layout() *schema.Layout {
	return v.typ.layout
}

// Len returns the number of elements.
func (v *Vec) Len() int {
	return v.buf.Length()
}

// Cap returns the number of element slots.
func (v *Vec) Cap() int {
	return v.buf.Capacity()
}

// Memory returns the raw buffer, header included. The bytes stay shared
// with v until v next resizes; after that they are stale.
func (v *Vec) Memory() []byte {
	return v.buf.Bytes()
}

// SetMemory makes v alias data, re-deriving length and capacity from its
// header. The previous buffer is not released.
func (v *Vec) SetMemory(data []byte) error {
	buf, err := memory.Wrap(data, v.typ.layout.ElementSize())
	if err != nil {
		return err
	}
	v.buf = buf
	return nil
}

// Cursor returns the attached cursor. Every bulk operation repositions it.
func (v *Vec) Cursor() *Cursor {
	return v.cursor
}

// At positions the attached cursor on element i and returns it. i is not
// bounds checked.
func (v *Vec) At(i int) *Cursor {
	return v.cursor.Index(i)
}

// Ref returns a detached cursor on element i.
func (v *Vec) Ref(i int) (*Cursor, error) {
	if err := v.checkIndex("ref", i); err != nil {
		return nil, err
	}
	return &Cursor{vec: v, offset: i * v.typ.layout.ElementSize()}, nil
}

// Get returns element i as a Record.
func (v *Vec) Get(i int) (Record, error) {
	if err := v.checkIndex("get", i); err != nil {
		return nil, err
	}
	return v.readRecord(i), nil
}

// Set overwrites element i. Every field must be present in r.
func (v *Vec) Set(i int, r Record) error {
	if err := v.checkIndex("set", i); err != nil {
		return err
	}
	if err := v.checkRecord(r); err != nil {
		return err
	}
	v.writeRecord(i, r)
	return nil
}

// Clone returns a copy of v with its own buffer of the same capacity.
func (v *Vec) Clone() (*Vec, error) {
	nv, err := v.typ.NewWithCapacity(v.Cap())
	if err != nil {
		return nil, err
	}
	nv.buf.CopyElements(0, v.buf, 0, v.Cap())
	nv.buf.SetLength(v.Len())
	return nv, nil
}

// Equal reports whether other has the same layout, length and element words.
func (v *Vec) Equal(other *Vec) bool {
	if other == nil || !v.typ.layout.Equal(other.typ.layout) || v.Len() != other.Len() {
		return false
	}
	n := v.Len() * v.typ.layout.ElementSize() * memory.WordSize
	return bytes.Equal(v.buf.Bytes()[:n], other.buf.Bytes()[:n])
}

// Reserve ensures room for n more elements.
func (v *Vec) Reserve(n int) error {
	nb, err := v.typ.alloc.Grow(v.buf, n)
	if err != nil {
		return err
	}
	v.buf = nb
	return nil
}

// ShrinkTo reduces capacity to Len()+max(minSlack, 0) if that is smaller.
func (v *Vec) ShrinkTo(minSlack int) error {
	nb, err := v.typ.alloc.ShrinkTo(v.buf, minSlack)
	if err != nil {
		return err
	}
	v.buf = nb
	return nil
}

// maybeShrink runs after length-reducing mutations. A failed shrink keeps
// the larger buffer, which is still valid.
func (v *Vec) maybeShrink() {
	nb, err := v.typ.alloc.MaybeShrink(v.buf)
	if err != nil {
		memory.Logger().Warn("shrink skipped",
			zap.Int("length", v.Len()),
			zap.Int("capacity", v.Cap()),
			zap.Error(err))
		return
	}
	v.buf = nb
}

func (v *Vec) setLength(n int) {
	v.buf.SetLength(n)
}

func (v *Vec) checkIndex(op string, i int) error {
	if i < 0 || i >= v.Len() {
		return errors.OutOfBounds(errors.PhaseRuntime, []string{op}, i, v.Len())
	}
	return nil
}

func (v *Vec) checkRecords(items []Record) error {
	for _, r := range items {
		if err := v.checkRecord(r); err != nil {
			return err
		}
	}
	return nil
}

func (v *Vec) checkRecord(r Record) error {
	for _, f := range v.typ.layout.Fields() {
		value, ok := r[f.Name]
		if !ok {
			return errors.FieldMissing(errors.PhaseEncode, []string{f.Name}, f.Name)
		}
		if err := checkValue(f, value); err != nil {
			return err
		}
	}
	return nil
}

// readRecord reads element i without touching the attached cursor.
func (v *Vec) readRecord(i int) Record {
	c := Cursor{vec: v, offset: i * v.typ.layout.ElementSize()}
	return c.Record()
}

// writeRecord writes a record already accepted by checkRecord.
func (v *Vec) writeRecord(i int, r Record) {
	c := Cursor{vec: v, offset: i * v.typ.layout.ElementSize()}
	for _, f := range v.typ.layout.Fields() {
		c.store(f, r[f.Name])
	}
}

func (v *Vec) writeRecords(at int, items []Record) {
	for k, r := range items {
		v.writeRecord(at+k, r)
	}
}
