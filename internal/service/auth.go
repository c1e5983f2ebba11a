package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meetup-api/internal/hash"
	"meetup-api/internal/logging"
	"meetup-api/internal/models"
	"meetup-api/internal/repo"
	"meetup-api/internal/tokens"
)

type AuthService struct {
	Repo          *repo.GormRepo
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	BcryptCost    int
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Register creates an ordinary user. Username is checked before email, so
// when both collide the caller sees the username conflict.
func (s *AuthService) Register(ctx context.Context, username, password, email string) error {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if _, err := s.Repo.GetUserByName(ctx, username); err == nil {
		return ErrUsernameConflict
	} else if !errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("lookup by username: %w", err)
	}
	if _, err := s.Repo.GetUserByEmail(ctx, email); err == nil {
		return ErrEmailConflict
	} else if !errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("lookup by email: %w", err)
	}

	pwHash, err := hash.HashPassword(password, s.BcryptCost)
	if err != nil {
		l.Error("register failed", "reason", "cannot hash password", "error", err)
		return err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		// Lost a race past the pre-checks; the unique index caught it.
		if errors.Is(err, repo.ErrDuplicate) {
			return ErrUsernameConflict
		}
		l.Error("register failed", "error", err)
		return err
	}

	l.Info("user registered", "username", username)
	return nil
}

// Login verifies credentials and mints an access/refresh token pair. Unknown
// username and wrong password are indistinguishable to the caller. The fresh
// refresh token overwrites the user's single stored slot, invalidating any
// prior session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	user, err := s.Repo.GetUserByName(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup by username: %w", err)
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login failed", "reason", "invalid credentials")
		return nil, ErrInvalidCredentials
	}

	accessToken, err := tokens.Sign(user, s.AccessSecret, s.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refreshToken, err := tokens.Sign(user, s.RefreshSecret, s.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	if err := s.Repo.UpdateRefreshToken(ctx, user.ID, refreshToken); err != nil {
		l.Error("login failed", "reason", "cannot store refresh token", "error", err)
		return nil, err
	}

	l.Info("user logged in")
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// VerifyAccessToken checks signature and expiry against the access secret.
// Tokens signed with the refresh secret do not pass.
func (s *AuthService) VerifyAccessToken(token string) (*tokens.Claims, error) {
	return tokens.ClaimsFromToken(token, s.AccessSecret)
}

// AssignAdmin grants the Admin role to targetUsername. The requester must
// itself hold an Admin access token. Re-assigning an existing admin succeeds.
func (s *AuthService) AssignAdmin(ctx context.Context, requesterToken, targetUsername string) error {
	l := logging.FromContext(ctx).With("svc", "auth.assign_admin", "target", targetUsername)

	claims, err := s.VerifyAccessToken(requesterToken)
	if err != nil {
		return err
	}
	if claims.Role != models.RoleAdmin {
		l.Warn("role assignment denied", "requester", claims.Username)
		return ErrForbidden
	}

	user, err := s.Repo.GetUserByName(ctx, targetUsername)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("lookup by username: %w", err)
	}

	if err := s.Repo.SetUserRole(ctx, user.ID, models.RoleAdmin); err != nil {
		l.Error("role assignment failed", "error", err)
		return err
	}

	l.Info("admin role assigned", "requester", claims.Username)
	return nil
}
