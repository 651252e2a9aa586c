package schema

import (
	"strings"
	"unicode"

	"go.bytecodealliance.org/wit"
)

// WIT describes the element as a WIT record named name. Fields appear in
// canonical order with kebab-case names: numeric→f32, integer→s32,
// character→char, boolean→bool. The record is a logical description only;
// packed boolean words have no WIT counterpart.
func (l *Layout) WIT(name string) *wit.TypeDef {
	fields := make([]wit.Field, 0, len(l.fields))
	for _, f := range l.fields {
		fields = append(fields, wit.Field{
			Name: toKebabCase(f.Name),
			Type: witType(f.Kind),
		})
	}
	recName := toKebabCase(name)
	return &wit.TypeDef{
		Name: &recName,
		Kind: &wit.Record{Fields: fields},
	}
}

func witType(k Kind) wit.Type {
	switch k {
	case KindNumeric:
		return wit.F32{}
	case KindInteger:
		return wit.S32{}
	case KindCharacter:
		return wit.Char{}
	default:
		return wit.Bool{}
	}
}

// toKebabCase converts camelCase, PascalCase and snake_case to kebab-case.
// Handles acronyms: parseHTTPHeader -> parse-http-header
func toKebabCase(s string) string {
	runes := []rune(strings.Trim(s, "_"))
	var result strings.Builder

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch {
		case r == '_':
			if result.Len() > 0 && !strings.HasSuffix(result.String(), "-") {
				result.WriteByte('-')
			}
		case unicode.IsUpper(r):
			acronymEnd := i + 1
			for acronymEnd < len(runes) && unicode.IsUpper(runes[acronymEnd]) {
				acronymEnd++
			}

			if acronymEnd > i+1 {
				// Last uppercase before lowercase starts next word, not part of acronym
				if acronymEnd < len(runes) && unicode.IsLower(runes[acronymEnd]) {
					acronymEnd--
				}
			}

			if result.Len() > 0 && !strings.HasSuffix(result.String(), "-") {
				result.WriteByte('-')
			}

			for j := i; j < acronymEnd; j++ {
				result.WriteRune(unicode.ToLower(runes[j]))
			}
			i = acronymEnd - 1
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}
