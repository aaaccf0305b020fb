package cryptox

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, VerifyPassword("correct horse battery staple", hash))
	require.Error(t, VerifyPassword("wrong password", hash))
}

func TestHashPasswordIsSalted(t *testing.T) {
	SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	first, err := HashPassword("pw")
	require.NoError(t, err)
	second, err := HashPassword("pw")
	require.NoError(t, err)

	// Same plaintext must not produce the same encoded hash.
	require.NotEqual(t, first, second)
	require.NoError(t, VerifyPassword("pw", first))
	require.NoError(t, VerifyPassword("pw", second))
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	require.Error(t, VerifyPassword("pw", "not-a-phc-string"))
	require.Error(t, VerifyPassword("pw", "$bcrypt$v=19$m=1,t=1,p=1$AAAA$BBBB"))
}

func TestGeneratePassword(t *testing.T) {
	pw, err := GeneratePassword()
	require.NoError(t, err)
	require.Len(t, pw, 16)

	other, err := GeneratePassword()
	require.NoError(t, err)
	require.NotEqual(t, pw, other)
}
