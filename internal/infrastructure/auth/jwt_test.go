package auth

import (
	"testing"
	"time"

	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     "test-secret",
		Expiration: expiration,
		Issuer:     "schoolkart-test",
	})
}

func newTestAdmin(t *testing.T, role identity.Role) *identity.Admin {
	t.Helper()

	admin, err := identity.NewAdmin("priya", "priya@schoolkart.in", "hash", role)
	require.NoError(t, err)
	return admin
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := newTestJWTService(time.Hour)
	admin := newTestAdmin(t, identity.RoleAdmin)

	token, expiresAt, err := service.GenerateToken(admin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID.String(), claims.AdminID)
	assert.Equal(t, "priya", claims.Username)
	assert.Equal(t, identity.RoleAdmin, claims.Role)

	id, err := claims.GetAdminUUID()
	require.NoError(t, err)
	assert.Equal(t, admin.ID, id)
}

func TestJWTService_ValidateToken(t *testing.T) {
	t.Run("rejects an expired token", func(t *testing.T) {
		service := newTestJWTService(-time.Minute)
		token, _, err := service.GenerateToken(newTestAdmin(t, identity.RoleAdmin))
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "other-secret", Expiration: time.Hour})
		token, _, err := other.GenerateToken(newTestAdmin(t, identity.RoleAdmin))
		require.NoError(t, err)

		_, err = newTestJWTService(time.Hour).ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := newTestJWTService(time.Hour).ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPasswordHashing(t *testing.T) {
	t.Run("verifies the original password only", func(t *testing.T) {
		hash, err := HashPassword("s3cret-pass")
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret-pass", hash)

		assert.True(t, CheckPassword(hash, "s3cret-pass"))
		assert.False(t, CheckPassword(hash, "wrong-pass"))
	})

	t.Run("rejects passwords over the bcrypt limit", func(t *testing.T) {
		long := make([]byte, 73)
		for i := range long {
			long[i] = 'a'
		}
		_, err := HashPassword(string(long))
		assert.ErrorIs(t, err, ErrPasswordTooLong)
	})
}
