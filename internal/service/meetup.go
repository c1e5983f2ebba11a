package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"meetup-api/internal/logging"
	"meetup-api/internal/models"
	"meetup-api/internal/repo"
	"meetup-api/internal/tokens"
	"meetup-api/internal/util"
)

// TokenVerifier is the contract the meetup service needs from the auth side:
// a raw access token in, validated claims out.
type TokenVerifier interface {
	VerifyAccessToken(token string) (*tokens.Claims, error)
}

type MeetupService struct {
	Repo *repo.GormRepo
	Auth TokenVerifier
}

type MeetupInput struct {
	Name        string
	Tags        string
	Date        string
	Location    string
	Description string
}

const (
	SortAscending  = "1"
	SortDescending = "-1"
)

// List returns all meetups, optionally cut to a 1-based page of the given
// limit. Pages past the end yield an empty slice, never an error.
func (s *MeetupService) List(ctx context.Context, page, limit int) ([]models.Meetup, error) {
	meetups, err := s.Repo.GetAllMeetups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list meetups: %w", err)
	}
	return util.Slice(meetups, page, limit), nil
}

func (s *MeetupService) GetByID(ctx context.Context, id uint) (*models.Meetup, error) {
	meetup, err := s.Repo.GetMeetupByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrMeetupNotFound
		}
		return nil, fmt.Errorf("get meetup: %w", err)
	}
	return meetup, nil
}

// FilterByTags returns every meetup whose tag list shares at least one tag
// with the query. The query and the stored tags are both normalized by
// stripping all whitespace before splitting on commas. No match is an empty
// slice, not an error.
func (s *MeetupService) FilterByTags(ctx context.Context, tagsCsv string) ([]models.Meetup, error) {
	meetups, err := s.Repo.GetAllMeetups(ctx)
	if err != nil {
		return nil, fmt.Errorf("filter meetups: %w", err)
	}

	wanted := make(map[string]struct{})
	for _, tag := range splitTags(tagsCsv) {
		wanted[tag] = struct{}{}
	}

	filtered := make([]models.Meetup, 0)
	for _, meetup := range meetups {
		for _, tag := range splitTags(meetup.Tags) {
			if _, ok := wanted[tag]; ok {
				filtered = append(filtered, meetup)
				break
			}
		}
	}
	return filtered, nil
}

// SortByName orders meetups by name using locale-aware collation. Direction
// must be "1" (ascending) or "-1" (descending). Pagination behaves as in List.
func (s *MeetupService) SortByName(ctx context.Context, direction string, page, limit int) ([]models.Meetup, error) {
	if direction != SortAscending && direction != SortDescending {
		return nil, ErrInvalidDirection
	}

	meetups, err := s.Repo.GetAllMeetups(ctx)
	if err != nil {
		return nil, fmt.Errorf("sort meetups: %w", err)
	}

	c := collate.New(language.Und)
	sort.SliceStable(meetups, func(i, j int) bool {
		if direction == SortDescending {
			return c.CompareString(meetups[i].Name, meetups[j].Name) > 0
		}
		return c.CompareString(meetups[i].Name, meetups[j].Name) < 0
	})

	return util.Slice(meetups, page, limit), nil
}

func (s *MeetupService) Create(ctx context.Context, token string, in MeetupInput) (*models.Meetup, error) {
	l := logging.FromContext(ctx).With("svc", "meetup.create", "name", in.Name)

	if err := s.requireAdmin(token); err != nil {
		return nil, err
	}

	if _, err := s.Repo.GetMeetupByName(ctx, in.Name); err == nil {
		return nil, ErrMeetupExists
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("lookup by name: %w", err)
	}

	meetup := models.Meetup{
		Name:        in.Name,
		Tags:        in.Tags,
		Date:        in.Date,
		Location:    in.Location,
		Description: in.Description,
	}
	if err := s.Repo.CreateMeetup(ctx, &meetup); err != nil {
		// The unique index on name backstops racing creators.
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrMeetupExists
		}
		l.Error("create failed", "error", err)
		return nil, err
	}

	l.Info("meetup created", "id", meetup.ID)
	return &meetup, nil
}

func (s *MeetupService) Update(ctx context.Context, token string, id uint, in MeetupInput) (*models.Meetup, error) {
	l := logging.FromContext(ctx).With("svc", "meetup.update", "id", id)

	if err := s.requireAdmin(token); err != nil {
		return nil, err
	}

	meetup, err := s.Repo.GetMeetupByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrMeetupNotFound
		}
		return nil, fmt.Errorf("get meetup: %w", err)
	}

	// The new name may only collide with the meetup being updated itself.
	if existing, err := s.Repo.GetMeetupByName(ctx, in.Name); err == nil {
		if existing.ID != meetup.ID {
			return nil, ErrMeetupExists
		}
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("lookup by name: %w", err)
	}

	meetup.Name = in.Name
	meetup.Tags = in.Tags
	meetup.Date = in.Date
	meetup.Location = in.Location
	meetup.Description = in.Description

	if err := s.Repo.UpdateMeetup(ctx, meetup); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrMeetupExists
		}
		l.Error("update failed", "error", err)
		return nil, err
	}

	l.Info("meetup updated")
	return meetup, nil
}

func (s *MeetupService) Delete(ctx context.Context, token string, id uint) error {
	l := logging.FromContext(ctx).With("svc", "meetup.delete", "id", id)

	if err := s.requireAdmin(token); err != nil {
		return err
	}

	if err := s.Repo.DeleteMeetup(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrMeetupNotFound
		}
		l.Error("delete failed", "error", err)
		return err
	}

	l.Info("meetup deleted")
	return nil
}

func (s *MeetupService) requireAdmin(token string) error {
	claims, err := s.Auth.VerifyAccessToken(token)
	if err != nil {
		return err
	}
	if claims.Role != models.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

func splitTags(csv string) []string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, csv)
	return strings.Split(stripped, ",")
}
