package metrics

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "techschool", Name: "http_requests_total", Help: "Handled HTTP requests",
	}, []string{"method", "status"})
	HandlerErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "techschool", Name: "handler_errors_total", Help: "Handler errors (5xx)",
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HandlerErrors)
}

func Handler() http.Handler { return promhttp.Handler() }

// Middleware นับ request/สถานะต่อเส้นทาง
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			HTTPRequests.WithLabelValues(c.Request().Method, strconv.Itoa(status)).Inc()
			if status >= http.StatusInternalServerError {
				HandlerErrors.Inc()
			}
			return err
		}
	}
}
