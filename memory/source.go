package memory

import (
	"fmt"

	"github.com/wippyai/structvec/errors"
)

// Source provides raw byte storage for buffers. Alloc must return zeroed
// memory of exactly size bytes; Free is called once the allocator has
// copied a buffer's contents elsewhere.
type Source interface {
	Alloc(size int) ([]byte, error)
	Free(b []byte)
}

// HeapSource allocates from the Go heap.
type HeapSource struct {
	// MaxBytes caps one allocation. 0 means unlimited.
	MaxBytes int
}

func (h HeapSource) Alloc(size int) ([]byte, error) {
	if size < 0 {
		return nil, errors.AllocationFailed(size, fmt.Errorf("negative size"))
	}
	if h.MaxBytes > 0 && size > h.MaxBytes {
		return nil, errors.AllocationFailed(size, fmt.Errorf("exceeds limit of %d bytes", h.MaxBytes))
	}
	return make([]byte, size), nil
}

// Free is a no-op; the garbage collector reclaims heap buffers.
func (HeapSource) Free([]byte) {}
