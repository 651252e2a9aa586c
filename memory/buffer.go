package memory

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/structvec/errors"
)

const (
	// WordSize is the width of one word in bytes.
	WordSize = 4

	// HeaderWords trails the element slots: capacity, then length.
	HeaderWords = 2
)

// Buffer is one flat block of little-endian 32-bit words: capacity element
// slots of elementSize words each, followed by a two-word header holding
// capacity and length. Float and integer accessors read the same bytes, so
// a word written through one view is visible through the other.
//
// A Buffer may alias memory it does not own (see Wrap). Nothing here
// synchronizes access.
type Buffer struct {
	data        []byte
	elementSize int
}

// Wrap aliases data as a buffer without copying. The trailing header must
// describe a capacity that exactly fills data and a length within it.
func Wrap(data []byte, elementSize int) (*Buffer, error) {
	if elementSize <= 0 {
		return nil, errors.Format("element size must be positive", nil)
	}
	if len(data)%WordSize != 0 || len(data) < HeaderWords*WordSize {
		return nil, errors.New(errors.PhaseDecode, errors.KindFormat).
			Detail("memory of %d bytes is not a whole number of words with a header", len(data)).
			Build()
	}

	b := &Buffer{data: data, elementSize: elementSize}
	words := len(data) / WordSize
	capacity := int(b.U32(words - 2))
	length := int(b.U32(words - 1))

	if capacity*elementSize+HeaderWords != words {
		return nil, errors.New(errors.PhaseDecode, errors.KindFormat).
			Detail("header capacity %d with element size %d does not match %d words", capacity, elementSize, words).
			Build()
	}
	if length > capacity {
		return nil, errors.New(errors.PhaseDecode, errors.KindFormat).
			Detail("header length %d exceeds capacity %d", length, capacity).
			Build()
	}
	return b, nil
}

// Bytes returns the backing bytes, header included.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Words returns the total number of words, header included.
func (b *Buffer) Words() int {
	return len(b.data) / WordSize
}

// ElementSize returns the number of words per element slot.
func (b *Buffer) ElementSize() int {
	return b.elementSize
}

// Capacity returns the number of element slots recorded in the header.
func (b *Buffer) Capacity() int {
	return int(b.U32(b.Words() - 2))
}

// Length returns the number of live elements recorded in the header.
func (b *Buffer) Length() int {
	return int(b.U32(b.Words() - 1))
}

// SetLength records n live elements in the header.
func (b *Buffer) SetLength(n int) {
	b.SetU32(b.Words()-1, uint32(n))
}

func (b *Buffer) setCapacity(n int) {
	b.SetU32(b.Words()-2, uint32(n))
}

// U32 reads word w.
func (b *Buffer) U32(w int) uint32 {
	return binary.LittleEndian.Uint32(b.data[w*WordSize:])
}

// SetU32 writes word w.
func (b *Buffer) SetU32(w int, v uint32) {
	binary.LittleEndian.PutUint32(b.data[w*WordSize:], v)
}

// I32 reads word w through the integer view.
func (b *Buffer) I32(w int) int32 {
	return int32(b.U32(w))
}

// SetI32 writes word w through the integer view.
func (b *Buffer) SetI32(w int, v int32) {
	b.SetU32(w, uint32(v))
}

// F32 reads word w through the float view.
func (b *Buffer) F32(w int) float32 {
	return math.Float32frombits(b.U32(w))
}

// SetF32 writes word w through the float view.
func (b *Buffer) SetF32(w int, v float32) {
	b.SetU32(w, math.Float32bits(v))
}

// MoveWords copies n words from src to dst within the buffer. Ranges may overlap.
func (b *Buffer) MoveWords(dst, src, n int) {
	if n <= 0 || dst == src {
		return
	}
	copy(b.data[dst*WordSize:(dst+n)*WordSize], b.data[src*WordSize:(src+n)*WordSize])
}

// MoveElements copies n element slots from index src to index dst. Ranges may overlap.
func (b *Buffer) MoveElements(dst, src, n int) {
	es := b.elementSize
	b.MoveWords(dst*es, src*es, n*es)
}

// CopyElements copies n element slots from src at srcIdx into b at dstIdx.
// The buffers must share an element size.
func (b *Buffer) CopyElements(dstIdx int, src *Buffer, srcIdx, n int) {
	if n <= 0 {
		return
	}
	es := b.elementSize
	copy(b.data[dstIdx*es*WordSize:(dstIdx+n)*es*WordSize], src.data[srcIdx*es*WordSize:(srcIdx+n)*es*WordSize])
}

// SwapElements exchanges slots i and j using slot tmp as scratch.
func (b *Buffer) SwapElements(i, j, tmp int) {
	b.MoveElements(tmp, i, 1)
	b.MoveElements(i, j, 1)
	b.MoveElements(j, tmp, 1)
}

// ZeroElements clears n element slots starting at index i.
func (b *Buffer) ZeroElements(i, n int) {
	if n <= 0 {
		return
	}
	es := b.elementSize
	clear(b.data[i*es*WordSize : (i+n)*es*WordSize])
}
