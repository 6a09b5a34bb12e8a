package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"
)

// TokenLength is the truncated length of every generated token.
const TokenLength = 32

// GenerateSecureToken derives a fixed-length opaque token from the input:
// SHA-256 digest, base64 URL-safe encoded without padding, truncated to
// TokenLength characters. Deterministic, so the same admin secret always maps
// to the same URL routing segment.
func GenerateSecureToken(input string) string {
	sum := sha256.Sum256([]byte(input))
	return base64.RawURLEncoding.EncodeToString(sum[:])[:TokenLength]
}

// NewSessionToken mints a per-login token from the current time plus random
// entropy, so every login produces a different session credential.
func NewSessionToken() string {
	nonce := make([]byte, 16)
	_, _ = rand.Read(nonce)
	return GenerateSecureToken(fmt.Sprintf("%d.%x", time.Now().UnixNano(), nonce))
}
