package extractor

import (
	"unicode"
	"unicode/utf8"
)

// IsComponentName reports whether an identifier names an extractable
// component. PascalCase signals a component (helpers and constants are
// lowercase by convention), single letters are too ambiguous to extract,
// and reserved entry names (the root component, framework page/layout
// names) always stay in the host file.
func IsComponentName(name string, reserved map[string]bool) bool {
	if utf8.RuneCountInString(name) < 2 {
		return false
	}
	first, _ := utf8.DecodeRuneInString(name)
	if !unicode.IsUpper(first) {
		return false
	}
	return !reserved[name]
}
