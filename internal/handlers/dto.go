package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email"    validate:"required,email,max=255"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AssignAdminRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
}

type MeetupRequest struct {
	Name        string `json:"name"        validate:"required,min=3,max=30"`
	Tags        string `json:"tags"        validate:"required,min=3,max=65"`
	Date        string `json:"date"        validate:"required,min=3,max=30"`
	Location    string `json:"location"    validate:"required,min=3,max=105"`
	Description string `json:"description" validate:"max=225"`
}

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
