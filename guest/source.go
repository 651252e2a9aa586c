package guest

import (
	"fmt"
	"math"
	"sync"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/structvec/errors"
	"github.com/wippyai/structvec/memory"
	"github.com/wippyai/structvec/schema"
	"github.com/wippyai/structvec/vec"
)

// wordAlign is the alignment requested for every buffer.
const wordAlign = memory.WordSize

type region struct {
	ptr  uint32
	size uint32
}

// Source implements memory.Source on top of a guest's linear memory, so
// vector buffers live where guest code can read them directly.
//
// Returned byte slices are views from api.Memory.Read. They go stale if the
// guest memory itself grows and wazero moves it; instantiate guests with
// wazero.RuntimeConfig.WithMemoryCapacityFromMax when vectors must outlive
// guest growth.
// Safe for concurrent use.
type Source struct {
	mem   api.Memory
	alloc Allocator

	mu   sync.Mutex
	live map[*byte]region
}

// NewSource returns a Source allocating from alloc within mem.
func NewSource(mem api.Memory, alloc Allocator) *Source {
	return &Source{mem: mem, alloc: alloc, live: make(map[*byte]region)}
}

// Alloc reserves size zeroed bytes of guest memory.
func (s *Source) Alloc(size int) ([]byte, error) {
	if size <= 0 || uint64(size) > math.MaxUint32 {
		return nil, errors.AllocationFailed(size, fmt.Errorf("size outside guest address range"))
	}

	ptr, err := s.alloc.Alloc(uint32(size), wordAlign)
	if err != nil {
		return nil, errors.AllocationFailed(size, err)
	}
	data, ok := s.mem.Read(ptr, uint32(size))
	if !ok {
		s.alloc.Free(ptr, uint32(size), wordAlign)
		return nil, errors.AllocationFailed(size,
			fmt.Errorf("guest returned region [%d, %d) beyond memory size %d", ptr, uint64(ptr)+uint64(size), s.mem.Size()))
	}
	clear(data)

	s.mu.Lock()
	s.live[&data[0]] = region{ptr: ptr, size: uint32(size)}
	s.mu.Unlock()

	Logger().Debug("guest buffer allocated", zap.Uint32("ptr", ptr), zap.Int("size", size))
	return data, nil
}

// Free returns a buffer obtained from Alloc to the guest. Unknown slices
// are ignored.
func (s *Source) Free(b []byte) {
	if len(b) == 0 {
		return
	}
	s.mu.Lock()
	r, ok := s.live[&b[0]]
	if ok {
		delete(s.live, &b[0])
	}
	s.mu.Unlock()

	if !ok {
		Logger().Debug("free of unknown guest buffer ignored", zap.Int("size", len(b)))
		return
	}
	s.alloc.Free(r.ptr, r.size, wordAlign)
	Logger().Debug("guest buffer freed", zap.Uint32("ptr", r.ptr), zap.Uint32("size", r.size))
}

// Locate returns the guest address and size of a buffer allocated here,
// typically v.Memory() for a vector whose type uses this Source.
func (s *Source) Locate(b []byte) (ptr, size uint32, ok bool) {
	if len(b) == 0 {
		return 0, 0, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.live[&b[0]]
	return r.ptr, r.size, ok
}

// Live returns the number of buffers currently allocated.
func (s *Source) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

// Define compiles def into a vector type whose buffers are allocated in
// guest memory through src. A nil src is an argument error.
func Define(def schema.Def, src *Source) (*vec.Type, error) {
	if src == nil {
		return nil, errors.Argument("define", "guest source is nil")
	}
	opts := vec.DefaultOptions()
	opts.Source = src
	return vec.DefineWithOptions(def, opts)
}
