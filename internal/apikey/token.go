package apikey

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// TokenPrefix makes keys self-identifying in logs and tooling without
	// revealing anything about the secret suffix.
	TokenPrefix = "mnee_agent_"

	// tokenEntropyBytes is the random suffix size: 16 bytes = 128 bits,
	// hex-encoded to 32 characters.
	tokenEntropyBytes = 16
)

// GenerateToken creates a new API key: a fixed recognizable prefix followed
// by a high-entropy suffix from a cryptographically secure random source.
func GenerateToken() (string, error) {
	suffix := make([]byte, tokenEntropyBytes)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("generate api key: %w", err)
	}
	return TokenPrefix + hex.EncodeToString(suffix), nil
}

// IsWellFormed reports whether a token has the expected shape. This is a
// cheap syntactic check only; it says nothing about validity.
func IsWellFormed(token string) bool {
	if !strings.HasPrefix(token, TokenPrefix) {
		return false
	}
	suffix := strings.TrimPrefix(token, TokenPrefix)
	if len(suffix) != tokenEntropyBytes*2 {
		return false
	}
	_, err := hex.DecodeString(suffix)
	return err == nil
}
