package tokens

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	a, err := Generate(AccessTokenPrefix)
	require.NoError(t, err)
	b, err := Generate(AccessTokenPrefix)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a, AccessTokenPrefix))
	assert.Len(t, a, len(AccessTokenPrefix)+43)
	assert.NotEqual(t, a, b)
}

func TestParseToken(t *testing.T) {
	secret, ok := ParseToken("tgcs_abc", AccessTokenPrefix)
	assert.True(t, ok)
	assert.Equal(t, "abc", secret)

	_, ok = ParseToken("abc", AccessTokenPrefix)
	assert.False(t, ok)
}

func TestHMAC256Hex(t *testing.T) {
	h := HMAC256Hex("pepper", "value")
	assert.Len(t, h, 64)
	assert.Equal(t, h, HMAC256Hex("pepper", "value"))
	assert.NotEqual(t, h, HMAC256Hex("other", "value"))
}

func TestSignUnsign(t *testing.T) {
	signed := Sign("pepper", "3f1c.session")

	value, ok := Unsign("pepper", signed)
	assert.True(t, ok)
	assert.Equal(t, "3f1c.session", value)

	_, ok = Unsign("other", signed)
	assert.False(t, ok)

	_, ok = Unsign("pepper", "3f1c.session.deadbeef")
	assert.False(t, ok)

	_, ok = Unsign("pepper", "nodot")
	assert.False(t, ok)
}
