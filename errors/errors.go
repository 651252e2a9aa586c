package errors

import (
	"fmt"
	"strings"
)

// Phase is the stage that failed.
type Phase string

const (
	PhaseCompile Phase = "compile" // struct definition to layout
	PhaseEncode  Phase = "encode"  // Go value to words
	PhaseDecode  Phase = "decode"  // text or memory to vec
	PhaseAlloc   Phase = "alloc"   // buffer growth and shrink
	PhaseRuntime Phase = "runtime" // container operations
)

// Kind is the error category. Each kind has a sentinel below.
type Kind string

const (
	KindSchema      Kind = "schema"
	KindAllocation  Kind = "allocation"
	KindTypeKind    Kind = "type_kind"
	KindArgument    Kind = "argument"
	KindFormat      Kind = "format"
	KindOutOfBounds Kind = "out_of_bounds"
)

// Sentinels for errors.Is. They carry no phase, so they match an error of
// the same kind raised in any phase.
var (
	ErrSchema      = &Error{Kind: KindSchema}
	ErrAllocation  = &Error{Kind: KindAllocation}
	ErrTypeKind    = &Error{Kind: KindTypeKind}
	ErrArgument    = &Error{Kind: KindArgument}
	ErrFormat      = &Error{Kind: KindFormat}
	ErrOutOfBounds = &Error{Kind: KindOutOfBounds}
)

// Error is the one error type returned by every package in this module.
type Error struct {
	Value     any
	Cause     error
	Phase     Phase
	Kind      Kind
	GoType    string
	FieldKind string
	Detail    string
	Path      []string
}

// Error renders "[phase] kind at path: Go type T, field kind K - detail (caused by: ...)",
// omitting the parts that are unset.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Phase != "" {
		fmt.Fprintf(&b, "[%s] ", e.Phase)
	}
	b.WriteString(string(e.Kind))
	if len(e.Path) > 0 {
		b.WriteString(" at " + strings.Join(e.Path, "."))
	}

	sep := ": "
	if m := e.mismatch(); m != "" {
		b.WriteString(sep + m)
		sep = " - "
	}
	if e.Detail != "" {
		b.WriteString(sep + e.Detail)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, " (caused by: %v)", e.Cause)
	}
	return b.String()
}

// mismatch names the offered Go type and the expected field kind.
func (e *Error) mismatch() string {
	parts := make([]string, 0, 2)
	if e.GoType != "" {
		parts = append(parts, "Go type "+e.GoType)
	}
	if e.FieldKind != "" {
		parts = append(parts, "field kind "+e.FieldKind)
	}
	return strings.Join(parts, ", ")
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error by kind, and by phase when the target sets one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e.Kind != t.Kind {
		return false
	}
	return t.Phase == "" || e.Phase == t.Phase
}

// Builder assembles an Error field by field:
//
//	errors.New(errors.PhaseDecode, errors.KindFormat).
//		Detail("length %v exceeds capacity %v", length, capacity).
//		Build()
type Builder struct {
	err Error
}

func New(phase Phase, kind Kind) *Builder {
	return &Builder{err: Error{Phase: phase, Kind: kind}}
}

// Path sets the location: an operation name, a field name, or both.
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

func (b *Builder) FieldKind(k string) *Builder {
	b.err.FieldKind = k
	return b
}

func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the message, formatting it when args are given.
func (b *Builder) Detail(msg string, args ...any) *Builder {
	b.err.Detail = msg
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	}
	return b
}

func (b *Builder) Build() *Error {
	return &b.err
}

// Schema creates a struct definition error naming the offending field and value.
// An empty field means the definition as a whole is invalid.
func Schema(field string, value any, detail string) *Error {
	err := &Error{
		Phase:  PhaseCompile,
		Kind:   KindSchema,
		Value:  value,
		Detail: detail,
	}
	if field != "" {
		err.Path = []string{field}
	}
	return err
}

// AllocationFailed reports that storage for bytes could not be obtained.
func AllocationFailed(bytes int, cause error) *Error {
	return &Error{
		Phase:  PhaseAlloc,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes", bytes),
		Value:  bytes,
		Cause:  cause,
	}
}

// TypeKind reports a value whose Go type does not fit a field kind.
func TypeKind(phase Phase, path []string, goType, fieldKind string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindTypeKind,
		Path:      path,
		GoType:    goType,
		FieldKind: fieldKind,
	}
}

// FieldMissing reports a record without a value for fieldName.
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeKind,
		Path:   path,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// Argument reports a bad argument to the named operation.
func Argument(op, detail string) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindArgument,
		Path:   []string{op},
		Detail: detail,
	}
}

// Format reports malformed text or memory.
func Format(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindFormat,
		Detail: detail,
		Cause:  cause,
	}
}

// OutOfBounds reports an element index outside [0, length).
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// Wrap attaches phase and kind to an error from outside this module.
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
