package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetup-api/internal/models"
)

var testUser = models.User{
	ID:       7,
	Username: "test_user",
	Email:    "test@example.com",
	Role:     models.RoleAdmin,
}

func TestSign_RoundTrip(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	token, err := Sign(&testUser, secret, 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ClaimsFromToken(token, secret)
	require.NoError(t, err)

	assert.Equal(t, testUser.ID, claims.UserID)
	assert.Equal(t, testUser.Username, claims.Username)
	assert.Equal(t, testUser.Email, claims.Email)
	assert.Equal(t, testUser.Role, claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, time.Second)
}

func TestClaimsFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := Sign(&testUser, []byte("refresh-secret"), time.Hour)
	require.NoError(t, err)

	claims, err := ClaimsFromToken(token, []byte("access-secret"))
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaimsFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	token, err := Sign(&testUser, secret, -time.Minute)
	require.NoError(t, err)

	claims, err := ClaimsFromToken(token, secret)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestClaimsFromToken_Malformed(t *testing.T) {
	t.Parallel()

	claims, err := ClaimsFromToken("not-a-valid-jwt", []byte("test-secret"))
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
