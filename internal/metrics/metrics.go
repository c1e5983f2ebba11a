package metrics

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	MeetupMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meetup_mutations_total",
			Help: "Total successful meetup mutations",
		},
		[]string{"action"}, // create|update|delete
	)

	LoginFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "login_failures_total",
			Help: "Total failed login attempts",
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(MeetupMutationsTotal)
	prometheus.MustRegister(LoginFailuresTotal)
}

func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			RequestsTotal.WithLabelValues(c.Path(), c.Request().Method, strconv.Itoa(status)).Inc()
			return err
		}
	}
}
