// Package structvec provides growable arrays of fixed-shape records stored
// in one contiguous block of 32-bit words.
//
// A definition names each field and its kind. Compiling it yields a layout
// that assigns every field a word offset (numeric, then integer, then
// character fields, with booleans packed 32 to a word at the end). Vectors
// store capacity × element-size words followed by a two-word header
// holding capacity and length, so the raw buffer is self-describing and
// can be handed to another goroutine, another vector or a WebAssembly
// guest without conversion.
//
// # Architecture Overview
//
//	structvec/           Root package with aliases and shortcuts
//	├── schema/          Definitions, validation and layout compilation
//	├── memory/          Word buffers, storage sources and the growth policy
//	├── vec/             Vector types, cursors, mutation and iteration
//	├── guest/           Vector buffers in wazero guest memory
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
//	points, err := structvec.Define(structvec.Def{
//	    "x":       "numeric",
//	    "y":       "numeric",
//	    "visible": "boolean",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v, err := points.New()
//	v.Push(structvec.Record{"x": 1, "y": 2, "visible": true})
//
//	x, _ := points.Field("x")
//	for _, c := range v.All() {
//	    c.SetNumeric(x, c.Numeric(x)*2)
//	}
//
//	text := v.String()                  // "[2,2,1,0,...,3,15,1]"
//	same, err := points.FromString(text)
//
// # Kinds
//
//	numeric     float32
//	integer     int32
//	character   one Unicode code point, read back as a one-rune string
//	boolean     one bit
//
// # Error Handling
//
// All errors are *errors.Error values carrying phase and kind. Match them
// with the sentinels:
//
//	if errors.Is(err, serrors.ErrTypeKind) { ... }
//
// # Logging
//
// Packages memory and guest log through zap and stay silent by default:
//
//	memory.SetLogger(zap.NewExample())
package structvec
