package countries

import (
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// IsValidPair reports whether iso2 is a known ISO 3166-1 alpha-2 code whose
// English display name equals name. Both comparisons ignore case.
func IsValidPair(iso2, name string) bool {
	if strings.TrimSpace(iso2) == "" || strings.TrimSpace(name) == "" {
		return false
	}
	displayName, ok := Name(iso2)
	if !ok {
		return false
	}
	return fold(displayName) == fold(name)
}

// Name returns the English display name for iso2.
func Name(iso2 string) (string, bool) {
	displayName, ok := displayNames[strings.ToUpper(strings.TrimSpace(iso2))]
	return displayName, ok
}

// Known reports whether iso2 is a known alpha-2 code.
func Known(iso2 string) bool {
	_, ok := Name(iso2)
	return ok
}

func fold(s string) string {
	return folder.String(strings.TrimSpace(s))
}
