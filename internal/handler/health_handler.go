package handler

import (
	"net/http"

	"devtinder-api/prometheus"

	"github.com/labstack/echo/v4"
)

// Welcome handles the root endpoint
func Welcome(c echo.Context) error {
	return c.String(http.StatusOK, "Welcome to DevTinder!")
}

// HealthCheck handles the health check endpoint
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "healthy",
		"service": "devtinder-api",
	})
}

// MetricsHandler exposes Prometheus metrics
func MetricsHandler(c echo.Context) error {
	handler := prometheus.GetPrometheusHandler()
	handler.ServeHTTP(c.Response(), c.Request())
	return nil
}
