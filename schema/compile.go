package schema

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/wippyai/structvec/errors"
)

const (
	// WordSize is the width of one storage word in bytes.
	WordSize = 4

	// BitsPerWord is how many boolean flags share one carrier word.
	BitsPerWord = 32

	// CursorOffsetName is the name of the cursor's own position member.
	CursorOffsetName = "_viewingIndex"
)

// Def maps field names to kind tags ("numeric", "integer", "boolean",
// "character"). Declaration order does not matter.
type Def map[string]string

// ReservedNames returns the names that may not be used as fields because
// they collide with cursor members.
func ReservedNames() []string {
	return []string{"self", "e", "index", "ref", "isNull", CursorOffsetName}
}

func isReserved(name string) bool {
	return slices.Contains(ReservedNames(), name)
}

// isIdentifier accepts ASCII identifiers: a letter or underscore followed by
// letters, digits and underscores.
func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// Compiler turns struct definitions into layouts. Layouts are cached by
// signature, so equal definitions share one *Layout.
// Safe for concurrent use.
type Compiler struct {
	cache map[string]*Layout
	mu    sync.Mutex
}

func NewCompiler() *Compiler {
	return &Compiler{
		cache: make(map[string]*Layout),
	}
}

var defaultCompiler = NewCompiler()

// Compile compiles def with the package-level compiler.
func Compile(def Def) (*Layout, error) {
	return defaultCompiler.Compile(def)
}

// Validate reports whether def compiles.
func Validate(def Def) bool {
	_, err := validate(def)
	return err == nil
}

// Compile validates def and assigns every field a word offset, and every
// boolean a bit within a shared carrier word.
func (c *Compiler) Compile(def Def) (*Layout, error) {
	buckets, err := validate(def)
	if err != nil {
		return nil, err
	}

	sig := signature(buckets)

	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.cache[sig]; ok {
		return cached, nil
	}

	l := build(buckets, sig)
	c.cache[sig] = l
	return l, nil
}

// validate checks def and returns its field names bucketed by kind, each
// bucket sorted.
func validate(def Def) ([4][]string, error) {
	var buckets [4][]string

	if len(def) == 0 {
		return buckets, errors.Schema("", nil, "struct definition must have at least one field")
	}

	for name, tag := range def {
		if !isIdentifier(name) {
			return buckets, errors.Schema(name, tag, fmt.Sprintf("field name %q is not a valid identifier", name))
		}
		if isReserved(name) {
			return buckets, errors.Schema(name, tag, fmt.Sprintf("field name %q is reserved", name))
		}
		kind, ok := ParseKind(tag)
		if !ok {
			return buckets, errors.Schema(name, tag, fmt.Sprintf("unsupported kind %q for field %q", tag, name))
		}
		buckets[kind] = append(buckets[kind], name)
	}

	for i := range buckets {
		slices.Sort(buckets[i])
	}
	return buckets, nil
}

func signature(buckets [4][]string) string {
	var b strings.Builder
	for k, names := range buckets {
		for _, name := range names {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(name)
			b.WriteByte(':')
			b.WriteString(Kind(k).String())
		}
	}
	return b.String()
}

func build(buckets [4][]string, sig string) *Layout {
	total := 0
	for _, names := range buckets {
		total += len(names)
	}

	l := &Layout{
		index:     make(map[string]int, total),
		signature: sig,
		fields:    make([]Field, 0, total),
	}

	word := 0
	for _, kind := range []Kind{KindNumeric, KindInteger, KindCharacter} {
		for _, name := range buckets[kind] {
			l.index[name] = len(l.fields)
			l.fields = append(l.fields, Field{Name: name, Kind: kind, Offset: word})
			l.wordKinds = append(l.wordKinds, kind)
			word++
		}
	}

	for k, name := range buckets[KindBoolean] {
		if k > 0 && k%BitsPerWord == 0 {
			word++
		}
		if k%BitsPerWord == 0 {
			l.wordKinds = append(l.wordKinds, KindBoolean)
			l.boolWords++
		}
		l.index[name] = len(l.fields)
		l.fields = append(l.fields, Field{Name: name, Kind: KindBoolean, Offset: word, Bit: k % BitsPerWord})
	}
	if len(buckets[KindBoolean]) > 0 {
		word++
	}

	l.elementSize = word
	return l
}
