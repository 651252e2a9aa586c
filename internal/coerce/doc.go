// Package coerce converts dynamically typed field values to word values.
//
// Records arrive as map[string]any, often straight from JSON decoding, so a
// numeric field may receive float64, int or uint8 alike. The helpers here
// accept every Go numeric type that fits the target word and report false
// otherwise.
//
// This package is internal to structvec.
package coerce
