package vec

import (
	"math"

	gojson "github.com/goccy/go-json"

	"github.com/wippyai/structvec/errors"
	"github.com/wippyai/structvec/schema"
)

// Text format: a JSON array of every element word (capacity × element
// size of them), followed by element size, capacity and length.
//
//	[1,2.5,0,1,2.5,0, 3,2,1]   two slots of three words, one live element
//
// Numeric words are written as numbers, with NaN and ±Inf written as 0
// because JSON has no representation for them. All other words are written
// as signed integers and round-trip exactly.

const trailerValues = 3

// MarshalJSON encodes the vector's words and header.
func (v *Vec) MarshalJSON() ([]byte, error) {
	l := v.typ.layout
	es := l.ElementSize()
	words := v.Cap() * es

	out := make([]any, 0, words+trailerValues)
	for w := 0; w < words; w++ {
		if l.WordKind(w%es) == schema.KindNumeric {
			f := float64(v.buf.F32(w))
			if math.IsNaN(f) || math.IsInf(f, 0) {
				f = 0
			}
			out = append(out, f)
		} else {
			out = append(out, v.buf.I32(w))
		}
	}
	out = append(out, es, v.Cap(), v.Len())

	data, err := gojson.Marshal(out)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseEncode, errors.KindFormat, err, "marshal words")
	}
	return data, nil
}

// String returns the MarshalJSON text.
func (v *Vec) String() string {
	data, err := v.MarshalJSON()
	if err != nil {
		return "[]"
	}
	return string(data)
}

// UnmarshalJSON replaces v's contents with the decoded text. v must have
// been created from a Type; its layout decides how words are read. On
// success the previous buffer goes back to the allocator, as on a resize;
// on error v is unchanged.
func (v *Vec) UnmarshalJSON(data []byte) error {
	var values []float64
	if err := gojson.Unmarshal(data, &values); err != nil {
		return errors.Format("text is not an array of numbers", err)
	}
	if len(values) < trailerValues {
		return errors.Format("text lacks element size, capacity and length", nil)
	}

	l := v.typ.layout
	tail := values[len(values)-trailerValues:]
	es, capacity, length := tail[0], tail[1], tail[2]

	if es != float64(l.ElementSize()) {
		return errors.New(errors.PhaseDecode, errors.KindTypeKind).
			Detail("element size %v does not match layout element size %d", es, l.ElementSize()).
			Value(es).
			Build()
	}
	if !isCount(capacity) || !isCount(length) {
		return errors.New(errors.PhaseDecode, errors.KindFormat).
			Detail("capacity %v and length %v must be non-negative integers", capacity, length).
			Build()
	}
	if length > capacity {
		return errors.New(errors.PhaseDecode, errors.KindFormat).
			Detail("length %v exceeds capacity %v", length, capacity).
			Build()
	}

	words := values[:len(values)-trailerValues]
	n := l.ElementSize()
	if float64(len(words)) != capacity*float64(n) {
		return errors.New(errors.PhaseDecode, errors.KindFormat).
			Detail("got %d words, want %v", len(words), capacity*float64(n)).
			Build()
	}

	buf, err := v.typ.alloc.Allocate(int(capacity), n)
	if err != nil {
		return err
	}
	for w, x := range words {
		if l.WordKind(w%n) == schema.KindNumeric {
			buf.SetF32(w, float32(x))
			continue
		}
		if x != math.Trunc(x) || x < math.MinInt32 || x > math.MaxInt32 {
			v.typ.alloc.Release(buf)
			return errors.New(errors.PhaseDecode, errors.KindFormat).
				Detail("word %d (%v) is not a 32-bit integer", w, x).
				Build()
		}
		buf.SetI32(w, int32(x))
	}
	buf.SetLength(int(length))

	old := v.buf
	v.buf = buf
	v.typ.alloc.Release(old)
	return nil
}

func isCount(x float64) bool {
	return x >= 0 && x == math.Trunc(x) && x <= math.MaxUint32
}
