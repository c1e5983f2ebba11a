package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"meetup-api/internal/models"
	"meetup-api/internal/repo"
	"meetup-api/internal/tokens"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Meetup{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()

	return &AuthService{
		Repo:          repo.New(initTestDB(t)),
		AccessSecret:  []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		BcryptCost:    bcrypt.MinCost,
	}
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "test_user", "password", "test@example.com"))

	pair, err := svc.Login(ctx, "test_user", "password")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "test_user", claims.Username)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, models.RoleNone, claims.Role)
	assert.NotZero(t, claims.UserID)
}

func TestAuthService_Register_NeverStoresPlaintext(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "test_user", "password", "test@example.com"))

	user, err := svc.Repo.GetUserByName(ctx, "test_user")
	require.NoError(t, err)
	assert.NotEqual(t, "password", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
}

func TestAuthService_Register_Conflicts(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "taken", "password", "taken@example.com"))

	tests := []struct {
		name     string
		username string
		email    string
		want     error
	}{
		{name: "username taken, new email", username: "taken", email: "new@example.com", want: ErrUsernameConflict},
		{name: "new username, email taken", username: "new_user", email: "taken@example.com", want: ErrEmailConflict},
		{name: "both taken reports username first", username: "taken", email: "taken@example.com", want: ErrUsernameConflict},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Register(ctx, tt.username, "password", tt.email)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "test_user", "password", "test@example.com"))

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "test_user", password: "wrong"},
		{name: "unknown username", username: "nobody", password: "password"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			pair, err := svc.Login(ctx, tt.username, tt.password)
			assert.Nil(t, pair)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestAuthService_Login_OverwritesRefreshSlot(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "test_user", "password", "test@example.com"))

	first, err := svc.Login(ctx, "test_user", "password")
	require.NoError(t, err)

	// later issuance time gives a distinct token
	time.Sleep(1100 * time.Millisecond)

	second, err := svc.Login(ctx, "test_user", "password")
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	user, err := svc.Repo.GetUserByName(ctx, "test_user")
	require.NoError(t, err)
	require.NotNil(t, user.RefreshToken)
	assert.Equal(t, second.RefreshToken, *user.RefreshToken)
}

func TestAuthService_VerifyAccessToken_RejectsRefreshSecret(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	user := models.User{ID: 1, Username: "test_user", Email: "test@example.com"}

	refreshSigned, err := tokens.Sign(&user, svc.RefreshSecret, svc.RefreshTTL)
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(refreshSigned)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, tokens.ErrInvalidToken)
}

func TestAuthService_VerifyAccessToken_Expired(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	user := models.User{ID: 1, Username: "test_user", Email: "test@example.com"}

	expired, err := tokens.Sign(&user, svc.AccessSecret, -time.Minute)
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(expired)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, tokens.ErrTokenExpired)
}

func adminToken(t *testing.T, svc *AuthService) string {
	t.Helper()

	token, err := tokens.Sign(&models.User{
		ID:       999,
		Username: "root_admin",
		Email:    "admin@example.com",
		Role:     models.RoleAdmin,
	}, svc.AccessSecret, svc.AccessTTL)
	require.NoError(t, err)
	return token
}

func userToken(t *testing.T, svc *AuthService) string {
	t.Helper()

	token, err := tokens.Sign(&models.User{
		ID:       998,
		Username: "plain_user",
		Email:    "plain@example.com",
	}, svc.AccessSecret, svc.AccessTTL)
	require.NoError(t, err)
	return token
}

func TestAuthService_AssignAdmin_Forbidden(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "target", "password", "target@example.com"))

	err := svc.AssignAdmin(ctx, userToken(t, svc), "target")
	assert.ErrorIs(t, err, ErrForbidden)

	user, err := svc.Repo.GetUserByName(ctx, "target")
	require.NoError(t, err)
	assert.Equal(t, models.RoleNone, user.Role)
}

func TestAuthService_AssignAdmin_InvalidToken(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	err := svc.AssignAdmin(context.Background(), "not-a-valid-jwt", "target")
	assert.ErrorIs(t, err, tokens.ErrInvalidToken)
}

func TestAuthService_AssignAdmin_UnknownTarget(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	err := svc.AssignAdmin(context.Background(), adminToken(t, svc), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_AssignAdmin_RoleVisibleOnNextLogin(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "target", "password", "target@example.com"))
	require.NoError(t, svc.AssignAdmin(ctx, adminToken(t, svc), "target"))

	// re-assigning an existing admin succeeds silently
	require.NoError(t, svc.AssignAdmin(ctx, adminToken(t, svc), "target"))

	pair, err := svc.Login(ctx, "target", "password")
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}
