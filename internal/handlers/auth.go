package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"meetup-api/internal/metrics"
	"meetup-api/internal/mykafka"
	"meetup-api/internal/service"
)

type AuthHandler struct {
	Auth     *service.AuthService
	Producer *mykafka.Producer
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.Auth.Register(ctx, req.Username, req.Password, req.Email); err != nil {
		return toHTTPError(err)
	}

	publish(c, h.Producer, "user_events", req.Username, map[string]any{
		"type":     "user_registered",
		"username": req.Username,
	})

	return c.JSON(http.StatusCreated, echo.Map{"message": "user registered"})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	pair, err := h.Auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		metrics.LoginFailuresTotal.Inc()
		return toHTTPError(err)
	}

	publish(c, h.Producer, "user_events", req.Username, map[string]any{
		"type":     "user_logged_in",
		"username": req.Username,
	})

	return c.JSON(http.StatusOK, pair)
}

func (h *AuthHandler) AssignAdmin(c echo.Context) error {
	var req AssignAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.Auth.AssignAdmin(ctx, bearerToken(c), req.Username); err != nil {
		return toHTTPError(err)
	}

	publish(c, h.Producer, "user_events", req.Username, map[string]any{
		"type":     "admin_assigned",
		"username": req.Username,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("admin role assigned to %s", req.Username)})
}
