package structvec

import (
	"github.com/wippyai/structvec/memory"
	"github.com/wippyai/structvec/schema"
	"github.com/wippyai/structvec/vec"
)

// Def maps field names to kind tags.
type Def = schema.Def

// Layout is a compiled element layout.
type Layout = schema.Layout

// Type constructs vectors of one element shape.
type Type = vec.Type

// Vec is a growable packed array of records.
type Vec = vec.Vec

// Record is one element as a field name→value map.
type Record = vec.Record

// Cursor is a positioned view of one element.
type Cursor = vec.Cursor

// Source provides raw storage for vector buffers.
type Source = memory.Source

// Options configures a Type.
type Options = vec.Options

// Compile validates def and computes its layout. Layouts are cached by
// canonical signature.
func Compile(def Def) (*Layout, error) {
	return schema.Compile(def)
}

// Validate reports whether def compiles.
func Validate(def Def) bool {
	return schema.Validate(def)
}

// Define compiles def into a vector type with default options.
func Define(def Def) (*Type, error) {
	return vec.Define(def)
}

// DefineWithOptions compiles def into a vector type using opts.
func DefineWithOptions(def Def, opts Options) (*Type, error) {
	return vec.DefineWithOptions(def, opts)
}

// DefaultOptions returns heap storage with default growth settings.
func DefaultOptions() Options {
	return vec.DefaultOptions()
}
