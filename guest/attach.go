package guest

import (
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/structvec/errors"
	"github.com/wippyai/structvec/vec"
)

// Attach wraps the size bytes at ptr in guest memory as a vector of type t
// without copying. The region must hold a complete buffer, header included,
// as written by Export or by guest code using the same layout.
func Attach(t *vec.Type, mem api.Memory, ptr, size uint32) (*vec.Vec, error) {
	data, ok := mem.Read(ptr, size)
	if !ok {
		return nil, outOfRange("attach", ptr, size, mem.Size())
	}
	v, err := t.FromMemory(data)
	if err != nil {
		return nil, err
	}
	Logger().Debug("vector attached to guest memory",
		zap.Uint32("ptr", ptr),
		zap.Uint32("size", size),
		zap.Int("length", v.Len()))
	return v, nil
}

// Export copies v's buffer into freshly allocated guest memory and returns
// its address and size. The copy is independent of v.
func Export(v *vec.Vec, mem api.Memory, alloc Allocator) (ptr, size uint32, err error) {
	data := v.Memory()
	size = uint32(len(data))

	ptr, err = alloc.Alloc(size, wordAlign)
	if err != nil {
		return 0, 0, errors.AllocationFailed(len(data), err)
	}
	if !mem.Write(ptr, data) {
		alloc.Free(ptr, size, wordAlign)
		return 0, 0, outOfRange("export", ptr, size, mem.Size())
	}
	Logger().Debug("vector exported to guest memory",
		zap.Uint32("ptr", ptr),
		zap.Uint32("size", size),
		zap.Int("length", v.Len()))
	return ptr, size, nil
}

func outOfRange(op string, ptr, size, memSize uint32) error {
	return errors.New(errors.PhaseRuntime, errors.KindOutOfBounds).
		Path(op).
		Value(ptr).
		Detail("region [%d, %d) exceeds guest memory of %d bytes", ptr, uint64(ptr)+uint64(size), memSize).
		Build()
}
