package vec

import (
	"errors"
	"maps"
	"math"
	"testing"

	serrors "github.com/wippyai/structvec/errors"
	"github.com/wippyai/structvec/memory"
	"github.com/wippyai/structvec/schema"
)

// itemDef has three words per element: weight, id, and a boolean carrier.
var itemDef = schema.Def{"id": "integer", "weight": "numeric", "on": "boolean"}

func itemType(t *testing.T) *Type {
	t.Helper()
	typ, err := Define(itemDef)
	if err != nil {
		t.Fatalf("define: %v", err)
	}
	return typ
}

func item(id int) Record {
	return Record{"id": id, "weight": float32(id) / 2, "on": id%2 == 0}
}

func itemsVec(t *testing.T, typ *Type, ids ...int) *Vec {
	t.Helper()
	records := make([]Record, len(ids))
	for i, id := range ids {
		records[i] = item(id)
	}
	v, err := typ.FromSlice(records)
	if err != nil {
		t.Fatalf("from slice: %v", err)
	}
	return v
}

func ids(v *Vec) []int32 {
	f, _ := v.Type().Field("id")
	return Map(v, func(c *Cursor, _ int) int32 { return c.Integer(f) })
}

func assertIDs(t *testing.T, v *Vec, want ...int32) {
	t.Helper()
	got := ids(v)
	if len(got) != len(want) {
		t.Fatalf("ids: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ids: got %v, want %v", got, want)
		}
	}
}

func sameMemory(a, b []byte) bool {
	return len(a) == len(b) && (len(a) == 0 || &a[0] == &b[0])
}

func TestPushPopScenario(t *testing.T) {
	typ, err := Define(schema.Def{"x": "numeric", "y": "numeric", "z": "numeric"})
	if err != nil {
		t.Fatalf("define: %v", err)
	}
	v, err := typ.New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	for i := 0; i < 5; i++ {
		n, err := v.Push(Record{"x": 1, "y": 1, "z": 1})
		if err != nil {
			t.Fatalf("push: %v", err)
		}
		if n != i+1 {
			t.Fatalf("push returned %d, want %d", n, i+1)
		}
	}
	for i := 0; i < 4; i++ {
		if _, ok := v.Pop(); !ok {
			t.Fatal("pop on non-empty vector failed")
		}
	}

	if v.Len() != 1 {
		t.Fatalf("length: got %d, want 1", v.Len())
	}
	got, err := v.Get(0)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := Record{"x": float32(1), "y": float32(1), "z": float32(1)}
	if !maps.Equal(got, want) {
		t.Errorf("remaining record: got %v, want %v", got, want)
	}
}

func TestNewDefaults(t *testing.T) {
	typ := itemType(t)
	v, err := typ.New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if v.Len() != 0 || v.Cap() != 15 {
		t.Errorf("got len=%d cap=%d, want 0/15", v.Len(), v.Cap())
	}
	if v.Layout() != typ.Layout() || v.Type() != typ {
		t.Error("vector should report its type and layout")
	}
	if len(v.Memory()) != (15*3+memory.HeaderWords)*memory.WordSize {
		t.Errorf("memory size: got %d", len(v.Memory()))
	}
}

func TestDefineErrors(t *testing.T) {
	if _, err := Define(schema.Def{"e": "numeric"}); !errors.Is(err, serrors.ErrSchema) {
		t.Errorf("expected schema error, got %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustDefine should panic on invalid definition")
		}
	}()
	MustDefine(schema.Def{})
}

func TestGetSetBounds(t *testing.T) {
	typ := itemType(t)
	v := itemsVec(t, typ, 1, 2, 3)

	for _, i := range []int{-1, 3, math.MaxInt} {
		if _, err := v.Get(i); !errors.Is(err, serrors.ErrOutOfBounds) {
			t.Errorf("Get(%d): expected out of bounds, got %v", i, err)
		}
		if err := v.Set(i, item(0)); !errors.Is(err, serrors.ErrOutOfBounds) {
			t.Errorf("Set(%d): expected out of bounds, got %v", i, err)
		}
		if _, err := v.Ref(i); !errors.Is(err, serrors.ErrOutOfBounds) {
			t.Errorf("Ref(%d): expected out of bounds, got %v", i, err)
		}
	}

	if err := v.Set(1, item(42)); err != nil {
		t.Fatalf("set: %v", err)
	}
	assertIDs(t, v, 1, 42, 3)

	err := v.Set(0, Record{"id": 5})
	if !errors.Is(err, serrors.ErrTypeKind) {
		t.Fatalf("missing fields: expected type_kind error, got %v", err)
	}
	assertIDs(t, v, 1, 42, 3)
}

func TestPushAtomic(t *testing.T) {
	typ := itemType(t)
	v := itemsVec(t, typ, 1, 2)

	bad := Record{"id": "seven", "weight": 1, "on": true}
	n, err := v.Push(item(3), bad)
	if !errors.Is(err, serrors.ErrTypeKind) {
		t.Fatalf("expected type_kind error, got %v", err)
	}
	if n != 2 || v.Len() != 2 {
		t.Errorf("failed push changed length to %d", v.Len())
	}
	assertIDs(t, v, 1, 2)
}

func TestPushAllocationFailure(t *testing.T) {
	opts := DefaultOptions()
	opts.Memory.MaxBytes = (4*3 + memory.HeaderWords) * memory.WordSize
	typ, err := DefineWithOptions(itemDef, opts)
	if err != nil {
		t.Fatalf("define: %v", err)
	}
	v, err := typ.NewWithCapacity(4)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := v.Push(item(1), item(2), item(3)); err != nil {
		t.Fatalf("push within capacity: %v", err)
	}

	before := v.Memory()
	_, err = v.Push(item(4), item(5))
	if !errors.Is(err, serrors.ErrAllocation) {
		t.Fatalf("expected allocation error, got %v", err)
	}
	if v.Len() != 3 || !sameMemory(before, v.Memory()) {
		t.Error("failed growth must leave the vector untouched")
	}
	assertIDs(t, v, 1, 2, 3)

	if _, err := typ.NewWithCapacity(100); !errors.Is(err, serrors.ErrAllocation) {
		t.Errorf("oversized vector: expected allocation error, got %v", err)
	}
}

func TestGrowthShrinkSettles(t *testing.T) {
	typ := itemType(t)
	v, _ := typ.New()

	if err := v.Reserve(10000); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if v.Cap() < 10000 {
		t.Fatalf("capacity after reserve: %d", v.Cap())
	}
	for i := 0; i < 51; i++ {
		if _, err := v.Push(item(i)); err != nil {
			t.Fatalf("push: %v", err)
		}
	}
	for v.Len() > 1 {
		v.Pop()
	}

	if v.Cap() != v.Len()+50 {
		t.Errorf("capacity: got %d, want %d", v.Cap(), v.Len()+50)
	}
	assertIDs(t, v, 0)
}

func TestReserveShrinkIdempotent(t *testing.T) {
	typ := itemType(t)
	v := itemsVec(t, typ, 1, 2, 3)
	if err := v.Reserve(10); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	before := v.Memory()
	if err := v.Reserve(0); err != nil {
		t.Fatalf("reserve(0): %v", err)
	}
	if err := v.ShrinkTo(v.Cap() - v.Len()); err != nil {
		t.Fatalf("shrink: %v", err)
	}
	if !sameMemory(before, v.Memory()) {
		t.Error("satisfied reserve/shrink must not reallocate")
	}

	if err := v.ShrinkTo(0); err != nil {
		t.Fatalf("shrink: %v", err)
	}
	if v.Cap() != 3 {
		t.Errorf("capacity: got %d, want 3", v.Cap())
	}
	assertIDs(t, v, 1, 2, 3)
}

func TestReserveShrinkOverflow(t *testing.T) {
	typ := itemType(t)

	for _, n := range []int{math.MaxInt, math.MaxInt - 10} {
		v := itemsVec(t, typ, 7, 8)
		before, capBefore := v.Memory(), v.Cap()
		if err := v.Reserve(n); !errors.Is(err, serrors.ErrAllocation) {
			t.Fatalf("reserve(%d): expected allocation error, got %v", n, err)
		}
		if v.Len() != 2 || v.Cap() != capBefore || !sameMemory(before, v.Memory()) {
			t.Errorf("reserve(%d): vector changed, len=%d cap=%d", n, v.Len(), v.Cap())
		}
		assertIDs(t, v, 7, 8)
	}

	v := itemsVec(t, typ, 7, 8)
	if err := v.Reserve(5); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	capBefore := v.Cap()
	if err := v.ShrinkTo(math.MaxInt); err != nil {
		t.Fatalf("shrink: %v", err)
	}
	if v.Len() != 2 || v.Cap() != capBefore || v.Len() > v.Cap() {
		t.Errorf("shrink to huge slack: len=%d cap=%d, want len=2 cap=%d", v.Len(), v.Cap(), capBefore)
	}
	r, err := v.Get(1)
	if err != nil || r["id"] != int32(8) {
		t.Errorf("get(1) after shrink: %v, %v", r, err)
	}

	if _, err := typ.NewWithCapacity(-1); !errors.Is(err, serrors.ErrArgument) {
		t.Errorf("negative capacity: expected argument error, got %v", err)
	}
}

func TestFromMemoryAlias(t *testing.T) {
	typ := itemType(t)
	a := itemsVec(t, typ, 1, 2, 3)

	b, err := typ.FromMemory(a.Memory())
	if err != nil {
		t.Fatalf("from memory: %v", err)
	}
	if b.Len() != 3 || b.Cap() != a.Cap() {
		t.Fatalf("alias header: len=%d cap=%d", b.Len(), b.Cap())
	}

	id, _ := typ.Field("id")
	b.At(0).SetInteger(id, 100)
	if a.At(0).Integer(id) != 100 {
		t.Error("write through alias not visible in original")
	}

	// Length changes are visible too: the header is shared.
	a.Pop()
	if b.Len() != 2 {
		t.Errorf("alias length: got %d, want 2", b.Len())
	}

	// Growth moves a to new storage; b keeps the old buffer.
	for i := 0; i < 20; i++ {
		if _, err := a.Push(item(10 + i)); err != nil {
			t.Fatalf("push: %v", err)
		}
	}
	if sameMemory(a.Memory(), b.Memory()) {
		t.Fatal("growth should have moved a to new storage")
	}
	a.At(0).SetInteger(id, 7)
	if b.At(0).Integer(id) != 100 {
		t.Error("stale alias must not observe writes after resize")
	}

	if err := b.SetMemory(a.Memory()); err != nil {
		t.Fatalf("set memory: %v", err)
	}
	if b.Len() != a.Len() || b.At(0).Integer(id) != 7 {
		t.Error("SetMemory should re-derive header and alias new storage")
	}
}

func TestFromMemoryErrors(t *testing.T) {
	typ := itemType(t)
	other, _ := Define(schema.Def{"x": "numeric"})
	v, _ := other.NewWithCapacity(4)

	if _, err := typ.FromMemory(v.Memory()); !errors.Is(err, serrors.ErrFormat) {
		t.Errorf("mismatched layout memory: expected format error, got %v", err)
	}
	if _, err := typ.FromMemory([]byte{1, 2, 3}); !errors.Is(err, serrors.ErrFormat) {
		t.Errorf("short memory: expected format error, got %v", err)
	}
	w := itemsVec(t, typ, 1)
	if err := w.SetMemory(nil); !errors.Is(err, serrors.ErrFormat) {
		t.Errorf("nil memory: expected format error, got %v", err)
	}
	assertIDs(t, w, 1)
}

func TestIsVec(t *testing.T) {
	typ := itemType(t)
	v := itemsVec(t, typ, 1)

	twin, _ := Define(schema.Def{"on": "boolean", "weight": "numeric", "id": "integer"})
	other, _ := Define(schema.Def{"id": "integer"})
	ov, _ := other.New()

	tests := []struct {
		candidate any
		name      string
		want      bool
	}{
		{v, "own_vector", true},
		{ov, "other_layout", false},
		{(*Vec)(nil), "nil_vector", false},
		{nil, "nil", false},
		{"vec", "string", false},
		{Record{"id": 1}, "record", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := typ.IsVec(tc.candidate); got != tc.want {
				t.Errorf("IsVec: got %v, want %v", got, tc.want)
			}
		})
	}

	if !twin.IsVec(v) {
		t.Error("equal definitions in any order must be compatible")
	}
}

func TestCloneEqual(t *testing.T) {
	typ := itemType(t)
	v := itemsVec(t, typ, 1, 2, 3)

	c, err := v.Clone()
	if err != nil {
		t.Fatalf("clone: %v", err)
	}
	if !v.Equal(c) || c.Cap() != v.Cap() {
		t.Fatal("clone should equal original")
	}
	if sameMemory(v.Memory(), c.Memory()) {
		t.Fatal("clone must not share memory")
	}

	c.Set(0, item(9))
	if v.Equal(c) {
		t.Error("modified clone should differ")
	}
	if v.Equal(nil) {
		t.Error("nil is never equal")
	}
	short := itemsVec(t, typ, 1, 2)
	if v.Equal(short) {
		t.Error("different lengths are not equal")
	}
}
