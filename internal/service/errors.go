package service

import "errors"

var (
	ErrUsernameConflict   = errors.New("username already taken")
	ErrEmailConflict      = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("not enough rights")
	ErrUserNotFound       = errors.New("user not found")
	ErrMeetupNotFound     = errors.New("meetup not found")
	ErrMeetupExists       = errors.New("meetup already exists")
	ErrInvalidDirection   = errors.New("invalid sort direction")
)
