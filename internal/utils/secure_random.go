package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

// RandomToken returns n cryptographically random bytes encoded as unpadded
// URL-safe base64, usable in URLs, cookies and file names.
func RandomToken(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("token length must be positive")
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
