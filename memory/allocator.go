package memory

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/wippyai/structvec/errors"
	"github.com/wippyai/structvec/internal/coerce"
)

// Config holds allocator tuning. The zero value is not useful; start from
// DefaultConfig.
type Config struct {
	// ShrinkThreshold is the slack (capacity - length) MaybeShrink tolerates
	// before reallocating to length + ShrinkThreshold.
	ShrinkThreshold int

	// DefaultCapacity is the element capacity of a vector created without one.
	DefaultCapacity int

	// GrowSlack is added on top of the required capacity when doubling is
	// not enough for a bulk insert.
	GrowSlack int

	// MaxBytes caps one allocation from the default heap source. 0 means unlimited.
	MaxBytes int
}

// DefaultConfig returns the default allocator configuration.
func DefaultConfig() Config {
	return Config{
		ShrinkThreshold: 50,
		DefaultCapacity: 15,
		GrowSlack:       15,
	}
}

// Allocator sizes buffers and moves their contents on resize.
//
// Every resize returns a new *Buffer and frees the old storage. Any other
// Buffer or vector aliasing the old storage is not updated and silently
// diverges; callers sharing memory must re-fetch it after any operation
// that can grow or shrink.
type Allocator struct {
	src Source
	cfg Config
}

// NewAllocator creates an allocator drawing storage from src. A nil src
// uses the Go heap limited by cfg.MaxBytes.
func NewAllocator(cfg Config, src Source) *Allocator {
	if src == nil {
		src = HeapSource{MaxBytes: cfg.MaxBytes}
	}
	return &Allocator{src: src, cfg: cfg}
}

var defaultAllocator = NewAllocator(DefaultConfig(), nil)

// Default returns the shared heap allocator with DefaultConfig.
func Default() *Allocator {
	return defaultAllocator
}

// Config returns the allocator configuration.
func (a *Allocator) Config() Config {
	return a.cfg
}

// Source returns the storage source.
func (a *Allocator) Source() Source {
	return a.src
}

// Allocate returns a buffer of capacity slots with length 0.
func (a *Allocator) Allocate(capacity, elementSize int) (*Buffer, error) {
	if capacity < 0 {
		return nil, errors.New(errors.PhaseAlloc, errors.KindArgument).
			Detail("capacity must not be negative, got %d", capacity).
			Build()
	}
	if elementSize <= 0 {
		return nil, errors.New(errors.PhaseAlloc, errors.KindArgument).
			Detail("element size must be positive, got %d", elementSize).
			Build()
	}
	if uint64(capacity) > math.MaxUint32 {
		return nil, errors.AllocationFailed(math.MaxInt, fmt.Errorf("capacity %d exceeds header range", capacity))
	}

	words, ok := coerce.SafeMul(capacity, elementSize)
	if !ok || words > math.MaxInt/WordSize-HeaderWords {
		return nil, errors.AllocationFailed(math.MaxInt, fmt.Errorf("capacity %d overflows", capacity))
	}
	words += HeaderWords

	data, err := a.src.Alloc(words * WordSize)
	if err != nil {
		Logger().Warn("buffer allocation failed",
			zap.Int("capacity", capacity),
			zap.Int("element_size", elementSize),
			zap.Error(err))
		return nil, err
	}
	if len(data) != words*WordSize {
		return nil, errors.AllocationFailed(words*WordSize, fmt.Errorf("source returned %d bytes", len(data)))
	}

	b := &Buffer{data: data, elementSize: elementSize}
	b.setCapacity(capacity)
	b.SetLength(0)
	return b, nil
}

// Grow makes room for additional more elements. It returns b unchanged when
// the capacity already suffices. Otherwise capacity doubles, or becomes
// length + additional + GrowSlack when doubling falls short. A request
// whose target does not fit in an int fails with an allocation error and
// leaves b untouched.
func (a *Allocator) Grow(b *Buffer, additional int) (*Buffer, error) {
	if additional <= 0 {
		return b, nil
	}
	length, capacity := b.Length(), b.Capacity()
	need, ok := coerce.SafeAdd(length, additional)
	if !ok {
		return nil, errors.AllocationFailed(math.MaxInt, fmt.Errorf("length %d plus %d overflows", length, additional))
	}
	if need <= capacity {
		return b, nil
	}

	newCapacity, ok := coerce.SafeMul(capacity, 2)
	if !ok || newCapacity < need {
		newCapacity, ok = coerce.SafeAdd(need, max(a.cfg.GrowSlack, 0))
		if !ok {
			return nil, errors.AllocationFailed(math.MaxInt, fmt.Errorf("capacity %d plus slack %d overflows", need, a.cfg.GrowSlack))
		}
	}
	return a.resize(b, newCapacity)
}

// MaybeShrink reallocates to length + ShrinkThreshold when the slack
// exceeds ShrinkThreshold. It is called after every length-reducing mutation.
func (a *Allocator) MaybeShrink(b *Buffer) (*Buffer, error) {
	length, capacity := b.Length(), b.Capacity()
	threshold := max(a.cfg.ShrinkThreshold, 0)
	if capacity-length <= threshold {
		return b, nil
	}
	return a.resize(b, length+threshold)
}

// ShrinkTo reallocates to length + max(minSlack, 0) if that is smaller than
// the current capacity. A target beyond the int range is never smaller.
func (a *Allocator) ShrinkTo(b *Buffer, minSlack int) (*Buffer, error) {
	target, ok := coerce.SafeAdd(b.Length(), max(minSlack, 0))
	if !ok || target >= b.Capacity() {
		return b, nil
	}
	return a.resize(b, target)
}

// Release returns b's storage to the source.
func (a *Allocator) Release(b *Buffer) {
	if b != nil {
		a.src.Free(b.data)
	}
}

// resize moves b into a buffer of newCapacity slots. Element words are
// copied exactly; the header is rewritten.
func (a *Allocator) resize(b *Buffer, newCapacity int) (*Buffer, error) {
	if newCapacity < 0 {
		return nil, errors.New(errors.PhaseAlloc, errors.KindArgument).
			Detail("resize to negative capacity %d", newCapacity).
			Build()
	}
	nb, err := a.Allocate(newCapacity, b.elementSize)
	if err != nil {
		return nil, err
	}

	length := b.Length()
	nb.CopyElements(0, b, 0, min(b.Capacity(), newCapacity))
	nb.SetLength(min(length, newCapacity))

	Logger().Debug("buffer resized",
		zap.Int("old_capacity", b.Capacity()),
		zap.Int("new_capacity", newCapacity),
		zap.Int("length", length),
		zap.Int("element_size", b.elementSize))

	a.src.Free(b.data)
	return nb, nil
}
