package ratecard

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// authTokenBytes is the number of random bytes in an authentication token (32 hex characters)
const authTokenBytes = 16

// NewAuthenticationToken returns a random lowercase hex token read from r.
// A nil reader uses crypto/rand.
func NewAuthenticationToken(r io.Reader) (string, error) {
	if r == nil {
		r = rand.Reader
	}

	b := make([]byte, authTokenBytes)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", fmt.Errorf("failed to generate authentication token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
