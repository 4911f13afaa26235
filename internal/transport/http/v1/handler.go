// Package v1 provides HTTP handlers for the conversation API.
package v1

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/timecapsule/timecapsule/internal/domain"
	"github.com/timecapsule/timecapsule/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/conversations/generate", h.GenerateReply)
	e.POST("/api/conversations/insights", h.GenerateInsights)

	e.POST("/api/conversations", h.SaveConversation)
	e.GET("/api/conversations", h.ListConversations)
	e.GET("/api/conversations/:id", h.GetConversation)
	e.PUT("/api/conversations/:id", h.UpdateConversation)
	e.DELETE("/api/conversations/:id", h.DeleteConversation)
	e.GET("/api/conversations/:id/export", h.ExportConversation)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// writeError maps domain errors to status codes. Validation failures carry
// a field-identifying message; model-output validation is the caller's 500
// with a distinct message so "insights generation failed" is reportable.
// Everything else is logged and collapsed to a generic message.
func (h *Handler) writeError(c echo.Context, err error, generic string) error {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		if validationErr.Source == domain.ValidationSourceModel {
			log.Printf("ERROR: model output rejected: %v", validationErr)
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to parse insights"})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"message": validationErr.Error()})
	}

	var notFoundErr *domain.NotFoundError
	if errors.As(err, &notFoundErr) {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Conversation not found"})
	}

	var policyErr *domain.PolicyError
	if errors.As(err, &policyErr) {
		return c.JSON(http.StatusConflict, map[string]string{"message": policyErr.Reason})
	}

	var upstreamErr *domain.UpstreamError
	if errors.As(err, &upstreamErr) {
		log.Printf("ERROR: %v", upstreamErr)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": generic})
	}

	log.Printf("ERROR: %v", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"message": generic})
}
