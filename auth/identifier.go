package auth

import (
	"regexp"
	"strings"
)

var phoneSeparators = regexp.MustCompile(`[\s\-\(\)\.]`)

// IsPhoneNumber reports whether input is 8 to 15 digits once separators are removed.
func IsPhoneNumber(input string) bool {
	clean := phoneSeparators.ReplaceAllString(input, "")
	if len(clean) < 8 || len(clean) > 15 {
		return false
	}
	for _, r := range clean {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NormalizeIdentifier trims the input and strips separators from phone numbers.
func NormalizeIdentifier(input string) string {
	input = strings.TrimSpace(input)
	if IsPhoneNumber(input) {
		return phoneSeparators.ReplaceAllString(input, "")
	}
	return input
}
