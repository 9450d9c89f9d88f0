package types

import (
	"fmt"
	"regexp"
)

const (
	minAccountIDLen = 2
	maxAccountIDLen = 64
)

var accountIDPattern = regexp.MustCompile(`^(([a-z\d]+[\-_])*[a-z\d]+\.)*([a-z\d]+[\-_])*[a-z\d]+$`)

// AccountID identifies the account an outcome executed on. For a
// transaction this is the signer, for a receipt the receiver.
type AccountID string

// Validate checks the account id grammar.
func (id AccountID) Validate() error {
	if len(id) < minAccountIDLen || len(id) > maxAccountIDLen {
		return fmt.Errorf("account id %q: length must be between %d and %d", string(id), minAccountIDLen, maxAccountIDLen)
	}
	if !accountIDPattern.MatchString(string(id)) {
		return fmt.Errorf("account id %q: invalid characters or separators", string(id))
	}
	return nil
}

func (id AccountID) String() string { return string(id) }
