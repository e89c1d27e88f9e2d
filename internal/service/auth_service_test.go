package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"membership-api/internal/auth"
	"membership-api/internal/model"
	"membership-api/pkg/apierror"
)

const testTTL = 299 * time.Second

func newTestAuthService(t *testing.T) (*AuthService, *memUserStore, *auth.TokenValidator) {
	t.Helper()

	keys, err := auth.NewHMACKeys("service-test-secret-123")
	require.NoError(t, err)

	store := newMemUserStore()
	hasher := auth.NewPasswordHasher(auth.Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	validator := auth.NewTokenValidator(keys)

	svc, err := NewAuthService(store, hasher, auth.NewTokenIssuer(keys), validator, testTTL)
	require.NoError(t, err)

	return svc, store, validator
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	t.Run("creates one user and issues a user-role token", func(t *testing.T) {
		svc, store, validator := newTestAuthService(t)

		session, err := svc.Register(context.Background(), "Ana", "ana@example.com", "s3cret")
		require.NoError(t, err)

		require.Equal(t, 1, store.count())
		assert.Equal(t, "ana@example.com", session.User.Email)
		assert.Equal(t, model.RoleUser, session.User.Role)
		assert.NotEmpty(t, session.User.ID)

		claims, err := validator.Validate(session.Token)
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", claims.Subject)
		assert.Equal(t, model.RoleUser, claims.Role)
		assert.WithinDuration(t, time.Now().Add(testTTL), claims.ExpiresAt, 2*time.Second)

		stored, err := store.FindByEmail(context.Background(), "ana@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret", stored.PasswordHash)
		assert.Contains(t, stored.PasswordHash, "$argon2id$")
	})

	t.Run("rejects a reused email without inserting", func(t *testing.T) {
		svc, store, _ := newTestAuthService(t)

		_, err := svc.Register(context.Background(), "Ana", "ana@example.com", "s3cret")
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), "Other Ana", "ana@example.com", "different")
		require.Error(t, err)
		assert.True(t, apierror.Is(err, apierror.KindAlreadyExists))
		assert.Equal(t, 1, store.creates)
		assert.Equal(t, 1, store.count())
	})

	t.Run("maps a unique violation from the store to already exists", func(t *testing.T) {
		svc, store, _ := newTestAuthService(t)

		_, err := svc.Register(context.Background(), "Ana", "ana@example.com", "s3cret")
		require.NoError(t, err)

		store.skipExistsCheck = true
		_, err = svc.Register(context.Background(), "Ana", "ana@example.com", "s3cret")
		assert.True(t, apierror.Is(err, apierror.KindAlreadyExists))
		assert.Equal(t, 1, store.count())
	})

	t.Run("requires every field", func(t *testing.T) {
		svc, store, _ := newTestAuthService(t)

		for _, tc := range [][3]string{
			{"", "ana@example.com", "pw"},
			{"Ana", "  ", "pw"},
			{"Ana", "ana@example.com", ""},
		} {
			_, err := svc.Register(context.Background(), tc[0], tc[1], tc[2])
			assert.True(t, apierror.Is(err, apierror.KindMissingCredentials), "%v", tc)
		}
		assert.Zero(t, store.count())
	})

	t.Run("surfaces store failures as database errors", func(t *testing.T) {
		svc, store, _ := newTestAuthService(t)
		store.failWith = errStoreDown

		_, err := svc.Register(context.Background(), "Ana", "ana@example.com", "pw")
		assert.True(t, apierror.Is(err, apierror.KindDatabaseError))
		assert.ErrorIs(t, err, errStoreDown)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	svc, store, validator := newTestAuthService(t)
	_, err := svc.Register(context.Background(), "Ana", "ana@example.com", "s3cret")
	require.NoError(t, err)

	t.Run("correct credentials yield a valid token", func(t *testing.T) {
		session, err := svc.Login(context.Background(), "ana@example.com", "s3cret")
		require.NoError(t, err)

		claims, err := validator.Validate(session.Token)
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", claims.Subject)
		assert.Equal(t, model.RoleUser, claims.Role)
		assert.Equal(t, "Ana", session.User.Name)
	})

	t.Run("token carries the stored role", func(t *testing.T) {
		created, err := svc.EnsureAdmin(context.Background(), "Root", "root@example.com", "rootpw")
		require.NoError(t, err)
		require.True(t, created)

		session, err := svc.Login(context.Background(), "root@example.com", "rootpw")
		require.NoError(t, err)

		claims, err := validator.Validate(session.Token)
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, claims.Role)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		session, err := svc.Login(context.Background(), "ana@example.com", "wrong")
		assert.True(t, apierror.Is(err, apierror.KindWrongCredentials))
		assert.Empty(t, session.Token)

		session, err = svc.Login(context.Background(), "nobody@example.com", "s3cret")
		assert.True(t, apierror.Is(err, apierror.KindWrongCredentials))
		assert.Empty(t, session.Token)
	})

	t.Run("email match is exact", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "ANA@example.com", "s3cret")
		assert.True(t, apierror.Is(err, apierror.KindWrongCredentials))
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "", "s3cret")
		assert.True(t, apierror.Is(err, apierror.KindMissingCredentials))

		_, err = svc.Login(context.Background(), "ana@example.com", "")
		assert.True(t, apierror.Is(err, apierror.KindMissingCredentials))
	})

	t.Run("malformed stored hash is a hashing error", func(t *testing.T) {
		store.mu.Lock()
		store.users["broken@example.com"] = model.User{Email: "broken@example.com", Role: model.RoleUser, PasswordHash: "plaintext"}
		store.mu.Unlock()

		_, err := svc.Login(context.Background(), "broken@example.com", "plaintext")
		assert.True(t, apierror.Is(err, apierror.KindHashingError))
	})
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	t.Parallel()

	svc, store, _ := newTestAuthService(t)

	created, err := svc.EnsureAdmin(context.Background(), "", "", "")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = svc.EnsureAdmin(context.Background(), "", "root@example.com", "rootpw")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(context.Background(), "", "root@example.com", "rootpw")
	require.NoError(t, err)
	assert.False(t, created)

	user, err := svc.GetUserByEmail(context.Background(), "root@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.Equal(t, "Administrator", user.Name)
	assert.Equal(t, 1, store.count())
}

func TestAuthService_GetUserByEmail(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestAuthService(t)

	_, err := svc.GetUserByEmail(context.Background(), "ghost@example.com")
	assert.True(t, apierror.Is(err, apierror.KindUserNotFound))
}

func TestNewAuthService_RejectsNonPositiveTTL(t *testing.T) {
	keys, err := auth.NewHMACKeys("service-test-secret-123")
	require.NoError(t, err)

	_, err = NewAuthService(newMemUserStore(), auth.NewPasswordHasher(auth.DefaultArgon2Params),
		auth.NewTokenIssuer(keys), auth.NewTokenValidator(keys), 0)
	assert.Error(t, err)
}
