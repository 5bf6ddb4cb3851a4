package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// Token sizes in bytes of entropy.
const (
	TokenSize128 = 16
	TokenSize256 = 32
)

// GenerateToken returns a URL-safe random token with size bytes of entropy.
// Used for dev-mode token secrets and anything else that needs an opaque
// high-entropy string.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", errors.New("cryptox: token size must be positive")
	}
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
