package tokens

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// AccessTokenPrefix marks emailed access tokens.
const AccessTokenPrefix = "tgcs_"

// Generate returns prefix followed by 32 random bytes, base64url encoded.
func Generate(prefix string) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return prefix + base64.RawURLEncoding.EncodeToString(b), nil
}

func ParseToken(raw, prefix string) (secret string, ok bool) {
	if !strings.HasPrefix(raw, prefix) {
		return "", false
	}
	return strings.TrimPrefix(raw, prefix), true
}

func HMAC256Hex(pepper, secret string) string {
	m := hmac.New(sha256.New, []byte(pepper))
	m.Write([]byte(secret))
	return hex.EncodeToString(m.Sum(nil))
}

// Sign returns "value.signature" so a cookie value can be checked before it
// is looked up.
func Sign(pepper, value string) string {
	return value + "." + HMAC256Hex(pepper, value)
}

// Unsign returns the value of a string produced by Sign, or false when the
// signature does not match.
func Unsign(pepper, signed string) (string, bool) {
	i := strings.LastIndexByte(signed, '.')
	if i <= 0 {
		return "", false
	}
	value, sig := signed[:i], signed[i+1:]
	if !hmac.Equal([]byte(sig), []byte(HMAC256Hex(pepper, value))) {
		return "", false
	}
	return value, true
}
