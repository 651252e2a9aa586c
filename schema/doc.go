// Package schema compiles struct definitions into word layouts.
//
// A struct definition maps field names to one of four kinds. The compiler
// assigns each field a 32-bit word inside a fixed-size element slot:
//
//	Kind       Storage
//	──────────────────────────────────────────────
//	numeric    one float32 word
//	integer    one int32 word
//	character  one int32 word holding a code point
//	boolean    one bit; up to 32 flags per word
//
// # Canonical Order
//
// Fields are grouped numeric, integer, character, boolean, and sorted by
// name inside each group. Offsets are assigned in that order, so the layout
// depends only on the name→kind mapping, never on declaration order:
//
//	{y: numeric, flag: boolean, x: numeric, n: integer}
//
//	word 0  x     (numeric)
//	word 1  y     (numeric)
//	word 2  n     (integer)
//	word 3  flag  (boolean, bit 0)
//
// Vectors built from equal definitions are therefore binary compatible and
// may exchange memory directly.
//
// # Validation
//
// Compile fails with a schema error (errors.ErrSchema) when the definition
// is empty, a name is not an identifier or is reserved (see ReservedNames),
// or a kind tag is unknown. Validate turns that failure into a boolean.
//
// # Interchange
//
// Layout.WIT renders the element as a WIT record so that external binding
// generators can describe it in Component Model terms.
package schema
