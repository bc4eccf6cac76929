package utils

import (
	"strings"
	"unicode"
)

func isIdentifierRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}

// NormalizeIdentifier converts a name (function, input, symbolic dimension or device kind) to a valid
// identifier: only ASCII letters, digits, and underscores are allowed.
//
// Invalid characters are replaced with underscores.
// If the name starts with a digit, it is prefixed with an underscore.
func NormalizeIdentifier(name string) string {
	var sb strings.Builder
	sb.Grow(len(name) + 1)
	for i, r := range name {
		switch {
		case i == 0 && r >= '0' && r <= '9':
			sb.WriteByte('_')
			sb.WriteRune(r)
		case isIdentifierRune(r):
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// IsIdentifier returns whether name is a non-empty valid identifier, that is, NormalizeIdentifier(name) == name.
func IsIdentifier(name string) bool {
	return name != "" && NormalizeIdentifier(name) == name
}

// ToSnakeCase converts an enum name from CamelCase to snake_case, e.g.: "PermuteDims" -> "permute_dims".
//
// A run of upper case letters is kept as one word, e.g.: "FFTShift" -> "fft_shift".
func ToSnakeCase(s string) string {
	runes := []rune(s)
	var sb strings.Builder
	sb.Grow(len(s) + 4)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 && runes[i-1] != '_' {
			prevLower := !unicode.IsUpper(runes[i-1])
			endOfAcronym := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || endOfAcronym {
				sb.WriteByte('_')
			}
		}
		sb.WriteRune(unicode.ToLower(r))
	}
	return sb.String()
}
