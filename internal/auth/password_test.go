package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"membership-api/pkg/apierror"
)

// testParams keeps hashing fast in tests.
var testParams = Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestPasswordHasher_HashProducesPHCString(t *testing.T) {
	hasher := NewPasswordHasher(testParams)

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))
	assert.Len(t, strings.Split(hash, "$"), 6)
	assert.NotContains(t, hash, "correct horse")
}

func TestPasswordHasher_VerifyRoundTrip(t *testing.T) {
	hasher := NewPasswordHasher(testParams)

	passwords := []string{"a", "hunter2", "contraseña-ñandú", strings.Repeat("x", 256)}
	for _, password := range passwords {
		hash, err := hasher.Hash(password)
		require.NoError(t, err)

		ok, err := hasher.Verify(hash, password)
		require.NoError(t, err)
		assert.True(t, ok, "password %q should verify", password)

		ok, err = hasher.Verify(hash, password+"!")
		require.NoError(t, err)
		assert.False(t, ok, "altered password %q should not verify", password)
	}
}

func TestPasswordHasher_SaltIsRandom(t *testing.T) {
	hasher := NewPasswordHasher(testParams)

	first, err := hasher.Hash("same")
	require.NoError(t, err)
	second, err := hasher.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestPasswordHasher_VerifyUsesStoredParameters(t *testing.T) {
	hash, err := NewPasswordHasher(testParams).Hash("secret")
	require.NoError(t, err)

	// A hasher configured with different costs must still verify old hashes.
	ok, err := NewPasswordHasher(DefaultArgon2Params).Verify(hash, "secret")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	hasher := NewPasswordHasher(testParams)

	malformed := []string{
		"",
		"plaintext",
		"$2a$12$abcdefghijklmnopqrstuv",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdHNhbHQ$aGFzaA",
		"$argon2id$v=19$m=0,t=1,p=1$c2FsdHNhbHQ$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$***$aGFzaA",
	}

	for _, encoded := range malformed {
		ok, err := hasher.Verify(encoded, "secret")
		assert.False(t, ok)
		require.Error(t, err, encoded)
		assert.True(t, apierror.Is(err, apierror.KindHashingError), encoded)
	}
}
