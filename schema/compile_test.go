package schema

import (
	"errors"
	"fmt"
	"testing"

	serrors "github.com/wippyai/structvec/errors"
)

func TestCompileCanonicalOrder(t *testing.T) {
	l, err := Compile(Def{
		"y":    "numeric",
		"flag": "boolean",
		"x":    "numeric",
		"n":    "integer",
		"c":    "character",
		"a":    "boolean",
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	tests := []struct {
		name   string
		kind   Kind
		offset int
		bit    int
	}{
		{"x", KindNumeric, 0, 0},
		{"y", KindNumeric, 1, 0},
		{"n", KindInteger, 2, 0},
		{"c", KindCharacter, 3, 0},
		{"a", KindBoolean, 4, 0},
		{"flag", KindBoolean, 4, 1},
	}

	for i, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, ok := l.Field(tc.name)
			if !ok {
				t.Fatalf("field %q missing", tc.name)
			}
			if f.Kind != tc.kind {
				t.Errorf("kind: got %v, want %v", f.Kind, tc.kind)
			}
			if f.Offset != tc.offset {
				t.Errorf("offset: got %d, want %d", f.Offset, tc.offset)
			}
			if f.Bit != tc.bit {
				t.Errorf("bit: got %d, want %d", f.Bit, tc.bit)
			}
			if l.FieldAt(i).Name != tc.name {
				t.Errorf("canonical position %d: got %q, want %q", i, l.FieldAt(i).Name, tc.name)
			}
		})
	}

	if l.ElementSize() != 5 {
		t.Errorf("element size: got %d, want 5", l.ElementSize())
	}
	if l.BooleanWords() != 1 {
		t.Errorf("boolean words: got %d, want 1", l.BooleanWords())
	}
}

func TestCompileOrderIndependent(t *testing.T) {
	names := []string{"alpha", "beta", "gamma", "delta", "eps", "zeta", "eta", "theta"}
	kinds := []string{"numeric", "integer", "boolean", "character"}

	base := Def{}
	for i, n := range names {
		base[n] = kinds[i%len(kinds)]
	}

	// Fresh compilers so the cache cannot hide a difference.
	want, err := NewCompiler().Compile(base)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	for rot := 1; rot < len(names); rot++ {
		t.Run(fmt.Sprintf("rotation_%d", rot), func(t *testing.T) {
			perm := Def{}
			for i := range names {
				n := names[(i+rot)%len(names)]
				perm[n] = base[n]
			}
			got, err := NewCompiler().Compile(perm)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			if got.ElementSize() != want.ElementSize() {
				t.Fatalf("element size: got %d, want %d", got.ElementSize(), want.ElementSize())
			}
			for i, f := range want.Fields() {
				if got.FieldAt(i) != f {
					t.Errorf("field %d: got %+v, want %+v", i, got.FieldAt(i), f)
				}
			}
			if !got.Equal(want) {
				t.Error("layouts should be equal")
			}
		})
	}
}

func TestCompileBooleanPacking(t *testing.T) {
	def := Def{"v": "numeric"}
	for i := 0; i < 34; i++ {
		def[fmt.Sprintf("f%02d", i)] = "boolean"
	}

	l, err := Compile(def)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	if l.BooleanWords() != 2 {
		t.Errorf("boolean words: got %d, want 2", l.BooleanWords())
	}
	if l.ElementSize() != 3 {
		t.Errorf("element size: got %d, want 3", l.ElementSize())
	}

	first, _ := l.Field("f00")
	last, _ := l.Field("f33")
	thirtySecond, _ := l.Field("f31")
	thirtyThird, _ := l.Field("f32")

	if first.Offset != 1 || first.Bit != 0 {
		t.Errorf("f00: got %d.%d, want 1.0", first.Offset, first.Bit)
	}
	if thirtySecond.Offset != 1 || thirtySecond.Bit != 31 {
		t.Errorf("f31: got %d.%d, want 1.31", thirtySecond.Offset, thirtySecond.Bit)
	}
	if thirtyThird.Offset != 2 || thirtyThird.Bit != 0 {
		t.Errorf("f32: got %d.%d, want 2.0", thirtyThird.Offset, thirtyThird.Bit)
	}
	if last.Offset != 2 || last.Bit != 1 {
		t.Errorf("f33: got %d.%d, want 2.1", last.Offset, last.Bit)
	}
	if l.WordKind(1) != KindBoolean || l.WordKind(2) != KindBoolean || l.WordKind(0) != KindNumeric {
		t.Error("word kinds do not match layout")
	}
}

func TestCompileExactlyThirtyTwoBooleans(t *testing.T) {
	def := Def{}
	for i := 0; i < 32; i++ {
		def[fmt.Sprintf("b%02d", i)] = "boolean"
	}
	l, err := Compile(def)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if l.ElementSize() != 1 {
		t.Errorf("element size: got %d, want 1", l.ElementSize())
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		def   Def
		name  string
		field string
	}{
		{name: "nil", def: nil},
		{name: "empty", def: Def{}},
		{name: "unknown_kind", def: Def{"x": "float64"}, field: "x"},
		{name: "reserved_self", def: Def{"self": "numeric"}, field: "self"},
		{name: "reserved_e", def: Def{"e": "integer"}, field: "e"},
		{name: "reserved_index", def: Def{"index": "integer"}, field: "index"},
		{name: "reserved_ref", def: Def{"ref": "boolean"}, field: "ref"},
		{name: "reserved_isNull", def: Def{"isNull": "boolean"}, field: "isNull"},
		{name: "reserved_cursor", def: Def{CursorOffsetName: "integer"}, field: CursorOffsetName},
		{name: "leading_digit", def: Def{"1x": "numeric"}, field: "1x"},
		{name: "dash", def: Def{"a-b": "numeric"}, field: "a-b"},
		{name: "empty_name", def: Def{"": "numeric"}, field: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compile(tc.def)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, serrors.ErrSchema) {
				t.Fatalf("expected schema error, got %v", err)
			}
			var se *serrors.Error
			if !errors.As(err, &se) {
				t.Fatal("expected *errors.Error")
			}
			if tc.field != "" && (len(se.Path) != 1 || se.Path[0] != tc.field) {
				t.Errorf("path: got %v, want [%s]", se.Path, tc.field)
			}
			if Validate(tc.def) {
				t.Error("Validate should report false")
			}
		})
	}
}

func TestCompileCache(t *testing.T) {
	c := NewCompiler()
	a, err := c.Compile(Def{"x": "numeric", "y": "numeric"})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	b, err := c.Compile(Def{"y": "numeric", "x": "numeric"})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if a != b {
		t.Error("equal definitions should share a cached layout")
	}

	other, _ := c.Compile(Def{"x": "integer", "y": "numeric"})
	if a.Equal(other) {
		t.Error("different kinds must not compare equal")
	}
}

func TestValidate(t *testing.T) {
	if !Validate(Def{"x": "numeric", "ok": "boolean"}) {
		t.Error("valid definition reported invalid")
	}
	if Validate(Def{"x": "string"}) {
		t.Error("invalid definition reported valid")
	}
}

func TestLayoutAccessors(t *testing.T) {
	l, err := Compile(Def{"b": "boolean", "n": "numeric", "i": "integer"})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	names := l.Names()
	want := []string{"n", "i", "b"}
	if len(names) != len(want) {
		t.Fatalf("names: got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d]: got %q, want %q", i, names[i], want[i])
		}
	}
	if l.NumFields() != 3 {
		t.Errorf("num fields: got %d", l.NumFields())
	}
	if l.Signature() != "n:numeric,i:integer,b:boolean" {
		t.Errorf("signature: got %q", l.Signature())
	}
	if _, ok := l.Field("missing"); ok {
		t.Error("unknown field should not be found")
	}
	if s := l.String(); s != "layout{size=3 n:numeric@0 i:integer@1 b:boolean@2.0}" {
		t.Errorf("string: got %q", s)
	}
	b, _ := l.Field("b")
	if b.Mask() != 1 {
		t.Errorf("mask: got %#x", b.Mask())
	}
}
