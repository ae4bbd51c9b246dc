package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	for _, size := range []int{16, 32, 64} {
		a, err := GenerateToken(size)
		require.NoError(t, err)
		b, err := GenerateToken(size)
		require.NoError(t, err)
		require.NotEqual(t, a, b)

		raw, err := base64.RawURLEncoding.DecodeString(a)
		require.NoError(t, err)
		require.Len(t, raw, size)
	}
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		tok, err := GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, tok)
	}
}

func TestRandomBytes(t *testing.T) {
	b, err := RandomBytes(64)
	require.NoError(t, err)
	require.Len(t, b, 64)
}

func TestEqualTokens(t *testing.T) {
	require.True(t, EqualTokens("abc", "abc"))
	require.False(t, EqualTokens("abc", "abd"))
	require.False(t, EqualTokens("abc", "abcd"))
	require.False(t, EqualTokens("", ""))
}
