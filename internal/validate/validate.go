// Package validate holds the input validation predicates used by the
// registration and login flows. These are simple format checks; they are not
// part of the sync core.
package validate

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// FirstName requires a non-blank value longer than two characters.
func FirstName(s string) bool {
	return len(strings.TrimSpace(s)) > 2
}

// LastName uses the same rule as FirstName.
func LastName(s string) bool {
	return len(strings.TrimSpace(s)) > 2
}

// Email checks the address against a minimal pattern.
func Email(s string) bool {
	return s != "" && emailRe.MatchString(s)
}

// Password requires at least four characters.
func Password(s string) bool {
	return len(s) >= 4
}
