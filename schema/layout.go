package schema

import (
	"strconv"
	"strings"
)

// Field is the compiled position of one named field inside an element slot.
type Field struct {
	Name   string
	Kind   Kind
	Offset int // word offset within the element
	Bit    int // bit within the word at Offset; booleans only
}

// Mask returns the single-bit mask of a boolean field.
func (f Field) Mask() uint32 {
	return 1 << uint(f.Bit)
}

// Layout is the immutable, order-independent descriptor produced by the
// compiler. Two layouts with the same signature are binary compatible.
type Layout struct {
	index       map[string]int
	signature   string
	fields      []Field
	wordKinds   []Kind
	elementSize int
	boolWords   int
}

// ElementSize returns the number of words in one element slot.
func (l *Layout) ElementSize() int {
	return l.elementSize
}

// NumFields returns the number of fields.
func (l *Layout) NumFields() int {
	return len(l.fields)
}

// BooleanWords returns how many words carry packed boolean flags.
func (l *Layout) BooleanWords() int {
	return l.boolWords
}

// Fields returns the fields in canonical order. The slice is shared; do not modify it.
func (l *Layout) Fields() []Field {
	return l.fields
}

// FieldAt returns the i-th field in canonical order.
func (l *Layout) FieldAt(i int) Field {
	return l.fields[i]
}

// Field looks up a field by name.
func (l *Layout) Field(name string) (Field, bool) {
	i, ok := l.index[name]
	if !ok {
		return Field{}, false
	}
	return l.fields[i], true
}

// Names returns the field names in canonical order.
func (l *Layout) Names() []string {
	names := make([]string, len(l.fields))
	for i, f := range l.fields {
		names[i] = f.Name
	}
	return names
}

// WordKind returns the kind stored at word w of an element slot. Boolean
// carrier words report KindBoolean.
func (l *Layout) WordKind(w int) Kind {
	return l.wordKinds[w]
}

// Signature returns the canonical "name:kind,..." string of the layout.
func (l *Layout) Signature() string {
	return l.signature
}

// Equal reports whether two layouts describe the same element shape.
func (l *Layout) Equal(other *Layout) bool {
	if l == other {
		return true
	}
	if l == nil || other == nil {
		return false
	}
	return l.signature == other.signature
}

func (l *Layout) String() string {
	var b strings.Builder
	b.WriteString("layout{size=")
	b.WriteString(strconv.Itoa(l.elementSize))
	for _, f := range l.fields {
		b.WriteByte(' ')
		b.WriteString(f.Name)
		b.WriteByte(':')
		b.WriteString(f.Kind.String())
		b.WriteByte('@')
		b.WriteString(strconv.Itoa(f.Offset))
		if f.Kind == KindBoolean {
			b.WriteByte('.')
			b.WriteString(strconv.Itoa(f.Bit))
		}
	}
	b.WriteByte('}')
	return b.String()
}
