// Package http provides the HTTP server implementation for the service.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/timecapsule/timecapsule/internal/service"
	v1 "github.com/timecapsule/timecapsule/internal/transport/http/v1"
)

// NewServer creates and configures the HTTP server.
func NewServer(svc *service.Service) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Handlers
	h := v1.NewHandler(svc)
	h.RegisterRoutes(e)

	return e
}
