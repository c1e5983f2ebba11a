package httpserver

import (
	"github.com/labstack/echo/v4"

	"meetup-api/internal/handlers"
	"meetup-api/internal/metrics"
)

type Deps struct {
	AuthHandler   *handlers.AuthHandler
	MeetupHandler *handlers.MeetupHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/metrics", metrics.Handler())

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/assign-admin", d.AuthHandler.AssignAdmin)

	meetups := v1.Group("/meetups")

	meetups.GET("", d.MeetupHandler.List)
	meetups.GET("/filter", d.MeetupHandler.FilterByTags)
	meetups.GET("/sorted", d.MeetupHandler.SortByName)
	meetups.GET("/:id", d.MeetupHandler.GetByID)

	meetups.POST("", d.MeetupHandler.Create)
	meetups.PUT("/:id", d.MeetupHandler.Update)
	meetups.DELETE("/:id", d.MeetupHandler.Delete)
}
