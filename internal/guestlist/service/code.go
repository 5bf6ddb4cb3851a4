package service

import (
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/verdant-events/guestlist/internal/guestlist/domain"
)

// codeAlphabet is the 36-symbol alphabet for invitation codes. Six uniform
// draws give roughly 2.2 billion possible codes.
const (
	codeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength      = 6
	maxCodeAttempts = 100
)

// ErrCodeSpaceExhausted means maxCodeAttempts consecutive generated codes
// collided with existing guests, which should never happen in practice.
var ErrCodeSpaceExhausted = errors.New("service: could not generate a free invitation code")

func randomCode() (string, error) {
	b := make([]byte, codeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		b[i] = codeAlphabet[n.Int64()]
	}
	return string(b), nil
}

// validCode reports whether a generated code satisfies the code invariants.
// Only used by tests and the generation sanity check.
func validCode(code string) bool {
	if len(code) != codeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return code == domain.NormalizeCode(code)
}
