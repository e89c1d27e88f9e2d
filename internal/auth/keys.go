package auth

import (
	"errors"
	"strings"
)

// minSecretLength is the shortest HS256 secret accepted at startup.
const minSecretLength = 16

// Keys holds the HMAC key used to sign and verify session tokens. It is
// built once at startup and shared read-only.
type Keys struct {
	signing   []byte
	verifying []byte
}

func NewHMACKeys(secret string) (Keys, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return Keys{}, errors.New("jwt secret is required")
	}
	if len(secret) < minSecretLength {
		return Keys{}, errors.New("jwt secret must be at least 16 characters")
	}

	key := []byte(secret)
	return Keys{signing: key, verifying: key}, nil
}
