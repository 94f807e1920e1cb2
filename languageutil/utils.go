package languageutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Casers keep state between calls and must not be shared between goroutines,
// so a fresh one is built for every conversion.
func Lower(value string) string {
	return cases.Lower(language.English).String(value)
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(Lower(s), Lower(substr))
}

// ContainsAnyFold reports whether any of the keywords is within s, ignoring case.
func ContainsAnyFold(s string, keywords []string) bool {
	lowered := Lower(s)
	for _, keyword := range keywords {
		if strings.Contains(lowered, Lower(keyword)) {
			return true
		}
	}
	return false
}
