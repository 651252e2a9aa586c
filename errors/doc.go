// Package errors provides structured error types for structvec.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The taxonomy is small:
//
//	schema        invalid struct definition (compile time)
//	allocation    the memory source could not provide a buffer
//	type_kind     a value does not fit a field kind, or a decoded element size differs
//	argument      an operation was called with a missing or invalid argument
//	format        serialized text or a memory handle is malformed
//	out_of_bounds an index lies outside the live range
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindTypeKind).
//		Path("point", "x").
//		GoType("string").
//		FieldKind("numeric").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Schema("self", "numeric", "reserved field name")
//	err := errors.OutOfBounds(errors.PhaseRuntime, nil, 10, 5)
//
// The exported sentinels (ErrSchema, ErrTypeKind, ...) match any error of the
// same kind through errors.Is. Use errors.As to recover the *Error.
package errors
