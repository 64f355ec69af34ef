package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barstock/backend/internal/infrastructure/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:     "test-secret-key-that-is-long-enough",
		Expiration: time.Hour,
		Issuer:     "barstock-test",
	}
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTService(testJWTConfig())

	t.Run("round trip preserves identity", func(t *testing.T) {
		token, err := svc.Generate("alice", RoleStaff)
		require.NoError(t, err)
		require.NotEmpty(t, token.AccessToken)
		assert.Equal(t, "Bearer", token.TokenType)

		claims, err := svc.Validate(token.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Username)
		assert.Equal(t, RoleStaff, claims.Role)
		assert.Equal(t, "barstock-test", claims.Issuer)
	})

	t.Run("rejects unknown role at issue time", func(t *testing.T) {
		_, err := svc.Generate("alice", Role("admin"))
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		_, err := svc.Validate("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects token signed with a different secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:     "another-secret-entirely-for-testing",
			Expiration: time.Hour,
			Issuer:     "barstock-test",
		})
		token, err := other.Generate("alice", RoleStaff)
		require.NoError(t, err)

		_, err = svc.Validate(token.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := NewJWTService(config.JWTConfig{
			Secret:     testJWTConfig().Secret,
			Expiration: -time.Minute,
			Issuer:     "barstock-test",
		})
		token, err := expired.Generate("alice", RoleViewer)
		require.NoError(t, err)

		_, err = svc.Validate(token.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestRole(t *testing.T) {
	assert.True(t, RoleStaff.CanWrite())
	assert.False(t, RoleViewer.CanWrite())
	assert.True(t, RoleStaff.IsValid())
	assert.True(t, RoleViewer.IsValid())
	assert.False(t, Role("admin").IsValid())
}

func TestCredentialStore(t *testing.T) {
	t.Run("authenticates configured users", func(t *testing.T) {
		store, err := NewCredentialStore(config.AuthConfig{
			Users: []string{"alice:s3cret:staff", "bob:pa55:viewer"},
		})
		require.NoError(t, err)

		role, err := store.Authenticate("alice", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, RoleStaff, role)

		role, err = store.Authenticate("bob", "pa55")
		require.NoError(t, err)
		assert.Equal(t, RoleViewer, role)
	})

	t.Run("rejects wrong password and unknown user alike", func(t *testing.T) {
		store, err := NewCredentialStore(config.AuthConfig{
			Users: []string{"alice:s3cret:staff"},
		})
		require.NoError(t, err)

		_, err = store.Authenticate("alice", "wrong")
		assert.ErrorIs(t, err, ErrBadCredentials)

		_, err = store.Authenticate("mallory", "s3cret")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("rejects malformed entries", func(t *testing.T) {
		_, err := NewCredentialStore(config.AuthConfig{Users: []string{"alice:s3cret"}})
		assert.Error(t, err)

		_, err = NewCredentialStore(config.AuthConfig{Users: []string{"alice:s3cret:admin"}})
		assert.Error(t, err)

		_, err = NewCredentialStore(config.AuthConfig{
			Users: []string{"alice:s3cret:staff", "alice:other:viewer"},
		})
		assert.Error(t, err)
	})
}
