package user

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
)

// Role tells whether a user ships cargo or transports it.
type Role string

const (
	Orderer     Role = "orderer"
	Transporter Role = "transporter"
)

// ParseRole accepts "orderer" or "transporter" in any letter case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	if r != Orderer && r != Transporter {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
	return nil
}

func (r Role) String() string {
	return string(r)
}
