package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// fallbackName is used when a key contains no letters or digits at all.
const fallbackName = "Field"

// splitWords splits s on every rune that cannot appear in a Go identifier.
func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// ToPascalCase converts a snake_case, kebab-case or camelCase string to PascalCase.
// Only the first rune of each word is changed; the rest keeps its case, so
// "runAs" becomes "RunAs" and "StageCD" stays "StageCD".
// Example: "pull_secrets" -> "PullSecrets"
func ToPascalCase(s string) string {
	// cases.Caser keeps state between calls, one per conversion.
	title := cases.Title(language.Und, cases.NoLower)

	var sb strings.Builder
	for _, word := range splitWords(s) {
		sb.WriteString(title.String(word))
	}
	return sb.String()
}

// Identifier converts s to an exported Go identifier.
// Identifiers that would start with a digit are prefixed with "T".
func Identifier(s string) string {
	name := ToPascalCase(s)
	if name == "" {
		return fallbackName
	}
	if r := []rune(name)[0]; !unicode.IsLetter(r) {
		name = "T" + name
	}
	return name
}

// TypeName converts a definition name to a Go type name.
func TypeName(s string) string {
	return Identifier(s)
}

// FieldName converts a property key to a Go struct field name.
func FieldName(s string) string {
	return Identifier(s)
}

// ToSnakeCase converts a string to snake_case.
// Uppercase letters are prefixed with underscore and lowercased; runs of
// uppercase letters are kept together ("StageCD" -> "stage_cd").
// Example: "UserProfile" -> "user_profile"
func ToSnakeCase(s string) string {
	runes := []rune(s)
	var sb strings.Builder
	for i, r := range runes {
		switch {
		case unicode.IsUpper(r):
			if i > 0 && needsBreak(runes, i) {
				sb.WriteRune('_')
			}
			sb.WriteRune(unicode.ToLower(r))
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		default:
			if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "_") {
				sb.WriteRune('_')
			}
		}
	}
	return strings.Trim(sb.String(), "_")
}

// needsBreak reports whether an underscore belongs before the uppercase rune at i.
func needsBreak(runes []rune, i int) bool {
	prev := runes[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	// End of an acronym: "HTTPServer" breaks before "Server".
	if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
		return true
	}
	return false
}
