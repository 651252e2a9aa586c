package vec

import (
	"github.com/wippyai/structvec/memory"
	"github.com/wippyai/structvec/schema"
)

// Type binds a compiled layout to an allocator. It is the constructor for
// vectors of one element shape.
// Safe for concurrent use.
type Type struct {
	layout *schema.Layout
	alloc  *memory.Allocator
}

// Options configures a Type.
type Options struct {
	// Source supplies buffer storage. Nil means the Go heap.
	Source memory.Source

	// Memory tunes growth and shrinking.
	Memory memory.Config
}

// DefaultOptions returns heap storage with memory.DefaultConfig.
func DefaultOptions() Options {
	return Options{
		Memory: memory.DefaultConfig(),
	}
}

// Define compiles def and returns a Type using DefaultOptions.
func Define(def schema.Def) (*Type, error) {
	return DefineWithOptions(def, DefaultOptions())
}

// DefineWithOptions compiles def and returns a Type using opts.
func DefineWithOptions(def schema.Def, opts Options) (*Type, error) {
	l, err := schema.Compile(def)
	if err != nil {
		return nil, err
	}
	return NewType(l, memory.NewAllocator(opts.Memory, opts.Source)), nil
}

// MustDefine is like Define but panics on an invalid definition.
func MustDefine(def schema.Def) *Type {
	t, err := Define(def)
	if err != nil {
		panic(err)
	}
	return t
}

// NewType binds an already compiled layout. A nil alloc uses memory.Default().
func NewType(l *schema.Layout, alloc *memory.Allocator) *Type {
	if alloc == nil {
		alloc = memory.Default()
	}
	return &Type{layout: l, alloc: alloc}
}

// Layout returns the element layout.
func (t *Type) Layout() *schema.Layout {
	return t.layout
}

// Allocator returns the allocator used by vectors of this type.
func (t *Type) Allocator() *memory.Allocator {
	return t.alloc
}

// Field looks up a field of the element layout.
func (t *Type) Field(name string) (schema.Field, bool) {
	return t.layout.Field(name)
}

// New returns an empty vector with the configured default capacity.
func (t *Type) New() (*Vec, error) {
	return t.NewWithCapacity(t.alloc.Config().DefaultCapacity)
}

// NewWithCapacity returns an empty vector with room for capacity elements.
func (t *Type) NewWithCapacity(capacity int) (*Vec, error) {
	buf, err := t.alloc.Allocate(capacity, t.layout.ElementSize())
	if err != nil {
		return nil, err
	}
	return t.wrap(buf), nil
}

// FromSlice returns a vector holding items, sized to fit them exactly.
func (t *Type) FromSlice(items []Record) (*Vec, error) {
	v, err := t.NewWithCapacity(len(items))
	if err != nil {
		return nil, err
	}
	if _, err := v.Push(items...); err != nil {
		return nil, err
	}
	return v, nil
}

// FromMemory aliases data, as returned by Vec.Memory, without copying. The
// new vector and every other holder of data share storage until one of
// them resizes.
func (t *Type) FromMemory(data []byte) (*Vec, error) {
	buf, err := memory.Wrap(data, t.layout.ElementSize())
	if err != nil {
		return nil, err
	}
	return t.wrap(buf), nil
}

// FromString decodes the text produced by Vec.MarshalJSON.
func (t *Type) FromString(text string) (*Vec, error) {
	v := t.wrap(nil)
	if err := v.UnmarshalJSON([]byte(text)); err != nil {
		return nil, err
	}
	return v, nil
}

// IsVec reports whether candidate is a *Vec whose elements have this
// type's layout.
func (t *Type) IsVec(candidate any) bool {
	v, ok := candidate.(*Vec)
	return ok && v != nil && v.typ != nil && v.typ.layout.Equal(t.layout)
}

func (t *Type) wrap(buf *memory.Buffer) *Vec {
	v := &Vec{typ: t, buf: buf}
	v.cursor = &Cursor{vec: v}
	v.scratch = &Cursor{vec: v}
	return v
}
