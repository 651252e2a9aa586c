package vec

import (
	"unicode/utf8"

	"github.com/wippyai/structvec/errors"
	"github.com/wippyai/structvec/internal/coerce"
	"github.com/wippyai/structvec/schema"
)

// emptyChar is stored and returned for unset character fields.
const emptyChar = ' '

// Cursor is a positioned view of one element. It holds a word offset into
// its vector's current buffer, never a copy of the data: reads and writes
// go straight to memory, and a cursor outlives any resize of its vector.
//
// The vector's attached cursor (Vec.Cursor, Vec.At) is moved by every bulk
// operation. Take a detached cursor with Ref when a position must survive
// other calls.
type Cursor struct {
	vec    *Vec
	offset int
}

// Index moves the cursor to element i and returns it. i is not bounds checked.
func (c *Cursor) Index(i int) *Cursor {
	c.offset = i * c.vec.typ.layout.ElementSize()
	return c
}

// Position returns the element index the cursor points at.
func (c *Cursor) Position() int {
	return c.offset / c.vec.typ.layout.ElementSize()
}

// Offset returns the word offset of the current element.
func (c *Cursor) Offset() int {
	return c.offset
}

// Ref returns a detached cursor at the same position.
func (c *Cursor) Ref() *Cursor {
	return &Cursor{vec: c.vec, offset: c.offset}
}

// IsNull reports whether the cursor points outside the live elements.
func (c *Cursor) IsNull() bool {
	if c == nil || c.vec == nil || c.offset < 0 {
		return true
	}
	return c.Position() >= c.vec.Len()
}

// Typed accessors. f must be a field of the vector's layout; its kind is
// not re-checked.

func (c *Cursor) Numeric(f schema.Field) float32 {
	return c.vec.buf.F32(c.offset + f.Offset)
}

func (c *Cursor) SetNumeric(f schema.Field, value float32) {
	c.vec.buf.SetF32(c.offset+f.Offset, value)
}

func (c *Cursor) Integer(f schema.Field) int32 {
	return c.vec.buf.I32(c.offset + f.Offset)
}

func (c *Cursor) SetInteger(f schema.Field, value int32) {
	c.vec.buf.SetI32(c.offset+f.Offset, value)
}

func (c *Cursor) Boolean(f schema.Field) bool {
	return c.vec.buf.U32(c.offset+f.Offset)&f.Mask() != 0
}

func (c *Cursor) SetBoolean(f schema.Field, value bool) {
	w := c.offset + f.Offset
	word := c.vec.buf.U32(w) &^ f.Mask()
	if value {
		word |= f.Mask()
	}
	c.vec.buf.SetU32(w, word)
}

// Character returns the stored code point as a one-rune string, or a space
// when the field is unset.
func (c *Cursor) Character(f schema.Field) string {
	r := c.vec.buf.I32(c.offset + f.Offset)
	if r == 0 {
		r = emptyChar
	}
	return string(rune(r))
}

// SetCharacter stores the first rune of s, or a space when s is empty.
func (c *Cursor) SetCharacter(f schema.Field, s string) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		r = emptyChar
	}
	c.vec.buf.SetI32(c.offset+f.Offset, r)
}

// Get returns the value of the named field.
func (c *Cursor) Get(name string) (any, error) {
	f, ok := c.vec.typ.layout.Field(name)
	if !ok {
		return nil, unknownField(name)
	}
	return c.load(f), nil
}

// Set stores value into the named field. Numeric and integer fields accept
// any Go number that fits; character fields require a string; boolean
// fields store the truthiness of value.
func (c *Cursor) Set(name string, value any) error {
	f, ok := c.vec.typ.layout.Field(name)
	if !ok {
		return unknownField(name)
	}
	if err := checkValue(f, value); err != nil {
		return err
	}
	c.store(f, value)
	return nil
}

// Record reads every field, in canonical order, into a new Record.
func (c *Cursor) Record() Record {
	fields := c.vec.typ.layout.Fields()
	r := make(Record, len(fields))
	for _, f := range fields {
		r[f.Name] = c.load(f)
	}
	return r
}

// SetRecord writes every field from r. It fails without writing anything
// when a field is missing or has the wrong type.
func (c *Cursor) SetRecord(r Record) error {
	if err := c.vec.checkRecord(r); err != nil {
		return err
	}
	for _, f := range c.vec.typ.layout.Fields() {
		c.store(f, r[f.Name])
	}
	return nil
}

func (c *Cursor) load(f schema.Field) any {
	switch f.Kind {
	case schema.KindNumeric:
		return c.Numeric(f)
	case schema.KindInteger:
		return c.Integer(f)
	case schema.KindCharacter:
		return c.Character(f)
	default:
		return c.Boolean(f)
	}
}

// store writes a value already accepted by checkValue.
func (c *Cursor) store(f schema.Field, value any) {
	switch f.Kind {
	case schema.KindNumeric:
		n, _ := coerce.ToFloat32(value)
		c.SetNumeric(f, n)
	case schema.KindInteger:
		n, _ := coerce.ToInt32(value)
		c.SetInteger(f, n)
	case schema.KindCharacter:
		c.SetCharacter(f, value.(string))
	default:
		c.SetBoolean(f, coerce.Truthy(value))
	}
}

func checkValue(f schema.Field, value any) error {
	var ok bool
	switch f.Kind {
	case schema.KindNumeric:
		_, ok = coerce.ToFloat32(value)
	case schema.KindInteger:
		_, ok = coerce.ToInt32(value)
	case schema.KindCharacter:
		_, ok = value.(string)
	default:
		ok = true
	}
	if !ok {
		return errors.TypeKind(errors.PhaseEncode, []string{f.Name}, coerce.TypeName(value), f.Kind.String())
	}
	return nil
}

func unknownField(name string) error {
	return errors.New(errors.PhaseRuntime, errors.KindArgument).
		Path(name).
		Detail("unknown field %q", name).
		Build()
}
