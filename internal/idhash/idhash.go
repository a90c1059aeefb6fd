// Package idhash generates and checks opaque session identifiers.
package idhash

import (
	"crypto/rand"
	"fmt"

	"github.com/mr-tron/base58"
)

// SessionIDBytes is the entropy of a session id.
const SessionIDBytes = 16

// NewSessionID returns SessionIDBytes random bytes, base58 encoded.
func NewSessionID() (string, error) {
	buf := make([]byte, SessionIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base58.Encode(buf), nil
}

// ValidSessionID reports whether s decodes to a session id of the right size.
func ValidSessionID(s string) bool {
	if s == "" {
		return false
	}
	decoded, err := base58.Decode(s)
	if err != nil {
		return false
	}
	return len(decoded) == SessionIDBytes
}
