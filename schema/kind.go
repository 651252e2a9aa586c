package schema

// Kind is the storage kind of a field. The declaration order is the
// canonical group order used by the layout compiler.
type Kind uint8

const (
	KindNumeric Kind = iota
	KindInteger
	KindCharacter
	KindBoolean
)

var kindNames = [...]string{
	KindNumeric:   "numeric",
	KindInteger:   "integer",
	KindCharacter: "character",
	KindBoolean:   "boolean",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Valid reports whether k is one of the four supported kinds.
func (k Kind) Valid() bool {
	return int(k) < len(kindNames)
}

// UsesIntWord reports whether the field is stored through the integer view.
func (k Kind) UsesIntWord() bool {
	return k == KindInteger || k == KindCharacter || k == KindBoolean
}

// ParseKind maps a kind tag to its Kind.
func ParseKind(tag string) (Kind, bool) {
	for k, name := range kindNames {
		if name == tag {
			return Kind(k), true
		}
	}
	return 0, false
}
