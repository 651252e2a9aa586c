package guest

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero/api"
)

// Allocator hands out linear memory inside a guest instance.
type Allocator interface {
	Alloc(size, align uint32) (uint32, error)
	Free(ptr, size, align uint32)
}

// WrapAllocator wraps a guest realloc export with the cabi_realloc
// signature (old_ptr, old_size, align, new_size) -> ptr.
func WrapAllocator(ctx context.Context, fn api.Function) Allocator {
	if fn == nil {
		return nil
	}
	return &ReallocAllocator{Ctx: ctx, Fn: fn}
}

// ReallocAllocator adapts a cabi_realloc export to Allocator.
type ReallocAllocator struct {
	Ctx context.Context
	Fn  api.Function
}

// Alloc calls realloc(0, 0, align, size).
func (a *ReallocAllocator) Alloc(size, align uint32) (uint32, error) {
	results, err := a.Fn.Call(a.Ctx, 0, 0, uint64(align), uint64(size))
	if err != nil {
		return 0, fmt.Errorf("guest allocation failed: %w", err)
	}
	if len(results) == 0 {
		return 0, fmt.Errorf("guest allocation returned no result")
	}
	ptr := uint32(results[0])
	if ptr == 0 && size > 0 {
		return 0, fmt.Errorf("guest allocation of %d bytes returned null", size)
	}
	return ptr, nil
}

// Free calls realloc(ptr, size, align, 0).
func (a *ReallocAllocator) Free(ptr, size, align uint32) {
	_, _ = a.Fn.Call(a.Ctx, uint64(ptr), uint64(size), uint64(align), 0)
}
