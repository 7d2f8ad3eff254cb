package utils

import (
	"regexp"
)

// Regex for valid account names. Starts with a letter or underscore,
// contains letters, numbers, underscores, dashes and dots. The cluster
// enforces its own length limit; we only reject characters that can never
// be valid.
var NameRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.-]*$`)

// IsValidName checks if the given name is a valid account identifier.
func IsValidName(name string) bool {
	return NameRegex.MatchString(name)
}

// IsOneOf checks if the value is one of the allowed options.
func IsOneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
