package reward

import (
	"errors"
	"regexp"
	"strings"
)

const (
	minNameLen = 2
	maxNameLen = 20
)

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateDisplayName checks the optional gaming name attached to a claim.
func ValidateDisplayName(s string) error {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return errors.New("Gaming name is required")
	case len(s) < minNameLen:
		return errors.New("Gaming name must be at least 2 characters")
	case len(s) > maxNameLen:
		return errors.New("Gaming name must be less than 20 characters")
	case !namePattern.MatchString(s):
		return errors.New("Gaming name can only contain letters, numbers, underscores, and hyphens")
	}
	return nil
}
