package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"meetup-api/internal/metrics"
	"meetup-api/internal/mykafka"
	"meetup-api/internal/service"
)

type MeetupHandler struct {
	Meetups  *service.MeetupService
	Producer *mykafka.Producer
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *MeetupHandler) List(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 0)
	limit := parseIntDefault(c.QueryParam("limit"), 0)

	meetups, err := h.Meetups.List(c.Request().Context(), page, limit)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, meetups)
}

func (h *MeetupHandler) GetByID(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	meetup, err := h.Meetups.GetByID(c.Request().Context(), uint(id))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, meetup)
}

func (h *MeetupHandler) FilterByTags(c echo.Context) error {
	meetups, err := h.Meetups.FilterByTags(c.Request().Context(), c.QueryParam("tags"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, meetups)
}

func (h *MeetupHandler) SortByName(c echo.Context) error {
	direction := c.QueryParam("direction")
	page := parseIntDefault(c.QueryParam("page"), 0)
	limit := parseIntDefault(c.QueryParam("limit"), 0)

	meetups, err := h.Meetups.SortByName(c.Request().Context(), direction, page, limit)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, meetups)
}

func (h *MeetupHandler) Create(c echo.Context) error {
	var req MeetupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	meetup, err := h.Meetups.Create(c.Request().Context(), bearerToken(c), service.MeetupInput{
		Name:        req.Name,
		Tags:        req.Tags,
		Date:        req.Date,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		return toHTTPError(err)
	}

	metrics.MeetupMutationsTotal.WithLabelValues("create").Inc()
	publish(c, h.Producer, "meetup_events", fmt.Sprint(meetup.ID), map[string]any{
		"type":     "meetup_created",
		"meetupID": meetup.ID,
		"name":     meetup.Name,
	})

	return c.JSON(http.StatusCreated, meetup)
}

func (h *MeetupHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req MeetupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	meetup, err := h.Meetups.Update(c.Request().Context(), bearerToken(c), uint(id), service.MeetupInput{
		Name:        req.Name,
		Tags:        req.Tags,
		Date:        req.Date,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		return toHTTPError(err)
	}

	metrics.MeetupMutationsTotal.WithLabelValues("update").Inc()
	publish(c, h.Producer, "meetup_events", fmt.Sprint(meetup.ID), map[string]any{
		"type":     "meetup_updated",
		"meetupID": meetup.ID,
		"name":     meetup.Name,
	})

	return c.JSON(http.StatusOK, meetup)
}

func (h *MeetupHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Meetups.Delete(c.Request().Context(), bearerToken(c), uint(id)); err != nil {
		return toHTTPError(err)
	}

	metrics.MeetupMutationsTotal.WithLabelValues("delete").Inc()
	publish(c, h.Producer, "meetup_events", strconv.Itoa(id), map[string]any{
		"type":     "meetup_deleted",
		"meetupID": id,
	})

	return c.NoContent(http.StatusNoContent)
}
