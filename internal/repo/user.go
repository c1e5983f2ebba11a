package repo

import (
	"context"

	"meetup-api/internal/models"
)

func (r *GormRepo) GetUserByName(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	return translate(r.DB.WithContext(ctx).Create(user).Error)
}

// UpdateRefreshToken overwrites the user's single refresh-token slot.
// The previous token, if any, is invalidated by the overwrite.
func (r *GormRepo) UpdateRefreshToken(ctx context.Context, userID uint, token string) error {
	result := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("refresh_token", token)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepo) SetUserRole(ctx context.Context, userID uint, role string) error {
	result := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("role", role)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
