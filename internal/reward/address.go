// Package reward implements the cosmetic crypto-reward flow: destination
// validation, the reward catalog, the claimer port and the claim ledger.
package reward

import (
	"fmt"
	"regexp"
	"strings"
)

// AddressLength is the length of a 0x-prefixed 20-byte hex address.
const AddressLength = 42

// Defect names what is wrong with a destination address.
type Defect string

const (
	DefectRequired      Defect = "required"
	DefectMissingPrefix Defect = "missing_prefix"
	DefectTooShort      Defect = "too_short"
	DefectTooLong       Defect = "too_long"
	DefectInvalidChars  Defect = "invalid_characters"
)

// AddressError describes the first defect found in an address.
type AddressError struct {
	Defect Defect
	Msg    string
}

func (e *AddressError) Error() string { return e.Msg }

// Unwrap lets errors.Is match ErrInvalidDestination.
func (e *AddressError) Unwrap() error { return ErrInvalidDestination }

var hexTail = regexp.MustCompile(`^[0-9a-fA-F]+$`)

// ValidateAddress checks s after trimming. Checks run in order: presence,
// prefix, length, characters. The returned error is an *AddressError.
func ValidateAddress(s string) error {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return &AddressError{DefectRequired, "Wallet address is required"}
	case !strings.HasPrefix(s, "0x"):
		return &AddressError{DefectMissingPrefix, "Address must start with '0x'"}
	case len(s) < AddressLength:
		return &AddressError{DefectTooShort, fmt.Sprintf("Address too short: %d/%d characters", len(s), AddressLength)}
	case len(s) > AddressLength:
		return &AddressError{DefectTooLong, fmt.Sprintf("Address too long: %d/%d characters", len(s), AddressLength)}
	case !hexTail.MatchString(s[2:]):
		return &AddressError{DefectInvalidChars, "Invalid characters. Only 0-9, a-f, A-F allowed after '0x'"}
	}
	return nil
}
