// Package bcrypt implements the PasswordHasher port with golang.org/x/crypto/bcrypt.
package bcrypt

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ericfisherdev/personauth/internal/domain/port/driven"
)

// DefaultCost is the work factor used when none is configured.
const DefaultCost = bcrypt.DefaultCost

// Compile-time interface satisfaction check.
var _ driven.PasswordHasher = (*Hasher)(nil)

// Hasher hashes passwords with bcrypt at a fixed cost.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher. cost is clamped to bcrypt's valid range.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Hasher{cost: cost}
}

// Cost returns the work factor new hashes are generated with.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash returns the bcrypt encoding of plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. A stored value that is not a
// bcrypt encoding, such as one written by a raw create, matches nothing.
func (h *Hasher) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || isMalformedHash(err) {
		return false, nil
	}
	return false, fmt.Errorf("bcrypt verify: %w", err)
}

func isMalformedHash(err error) bool {
	var (
		prefixErr  bcrypt.InvalidHashPrefixError
		costErr    bcrypt.InvalidCostError
		versionErr bcrypt.HashVersionTooNewError
	)
	return errors.Is(err, bcrypt.ErrHashTooShort) ||
		errors.As(err, &prefixErr) ||
		errors.As(err, &costErr) ||
		errors.As(err, &versionErr)
}
