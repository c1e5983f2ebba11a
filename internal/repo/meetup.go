package repo

import (
	"context"

	"meetup-api/internal/models"
)

func (r *GormRepo) GetAllMeetups(ctx context.Context) ([]models.Meetup, error) {
	var meetups []models.Meetup
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&meetups).Error; err != nil {
		return nil, translate(err)
	}
	return meetups, nil
}

func (r *GormRepo) GetMeetupByID(ctx context.Context, id uint) (*models.Meetup, error) {
	var meetup models.Meetup
	if err := r.DB.WithContext(ctx).First(&meetup, id).Error; err != nil {
		return nil, translate(err)
	}
	return &meetup, nil
}

func (r *GormRepo) GetMeetupByName(ctx context.Context, name string) (*models.Meetup, error) {
	var meetup models.Meetup
	if err := r.DB.WithContext(ctx).Where("name = ?", name).First(&meetup).Error; err != nil {
		return nil, translate(err)
	}
	return &meetup, nil
}

// CreateMeetup relies on the unique index on name as the backstop for
// concurrent creators racing past the service-level existence check.
func (r *GormRepo) CreateMeetup(ctx context.Context, meetup *models.Meetup) error {
	return translate(r.DB.WithContext(ctx).Create(meetup).Error)
}

func (r *GormRepo) UpdateMeetup(ctx context.Context, meetup *models.Meetup) error {
	return translate(r.DB.WithContext(ctx).Save(meetup).Error)
}

func (r *GormRepo) DeleteMeetup(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&models.Meetup{}, id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
