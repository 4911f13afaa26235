package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/timecapsule/timecapsule/internal/domain"
)

// GenerateReply generates the counterpart's next message.
// POST /api/conversations/generate
func (h *Handler) GenerateReply(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.GenerateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return h.writeError(c, err, "Failed to generate conversation")
	}

	resp, err := h.service.GenerateReply(ctx, &req)
	if err != nil {
		return h.writeError(c, err, "Failed to generate conversation")
	}
	return c.JSON(http.StatusOK, resp)
}

// GenerateInsights generates the three-category summary of a conversation.
// POST /api/conversations/insights
func (h *Handler) GenerateInsights(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.InsightsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return h.writeError(c, err, "Failed to generate insights")
	}

	insights, err := h.service.GenerateInsights(ctx, &req)
	if err != nil {
		return h.writeError(c, err, "Failed to generate insights")
	}
	return c.JSON(http.StatusOK, insights)
}

// SaveConversation persists a new conversation.
// POST /api/conversations
func (h *Handler) SaveConversation(c echo.Context) error {
	ctx := c.Request().Context()

	var draft domain.ConversationDraft
	if err := c.Bind(&draft); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	conv, err := h.service.SaveConversation(ctx, &draft)
	if err != nil {
		return h.writeError(c, err, "Failed to save conversation")
	}
	return c.JSON(http.StatusCreated, conv)
}

// ListConversations returns conversations filtered by userId.
// GET /api/conversations?userId=N
func (h *Handler) ListConversations(c echo.Context) error {
	ctx := c.Request().Context()

	var userID *int
	if raw := c.QueryParam("userId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid userId"})
		}
		userID = &id
	}

	convs, err := h.service.ListConversations(ctx, userID)
	if err != nil {
		return h.writeError(c, err, "Failed to list conversations")
	}
	return c.JSON(http.StatusOK, convs)
}

// GetConversation retrieves a stored conversation.
// GET /api/conversations/:id
func (h *Handler) GetConversation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := conversationID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid conversation ID"})
	}

	conv, err := h.service.GetConversation(ctx, id)
	if err != nil {
		return h.writeError(c, err, "Failed to retrieve conversation")
	}
	return c.JSON(http.StatusOK, conv)
}

// UpdateConversation shallow-merges fields onto a stored conversation.
// PUT /api/conversations/:id
func (h *Handler) UpdateConversation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := conversationID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid conversation ID"})
	}

	var update domain.ConversationUpdate
	if err := c.Bind(&update); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	conv, err := h.service.UpdateConversation(ctx, id, &update)
	if err != nil {
		return h.writeError(c, err, "Failed to update conversation")
	}
	return c.JSON(http.StatusOK, conv)
}

// DeleteConversation removes a stored conversation.
// DELETE /api/conversations/:id
func (h *Handler) DeleteConversation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := conversationID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid conversation ID"})
	}

	if err := h.service.DeleteConversation(ctx, id); err != nil {
		return h.writeError(c, err, "Failed to delete conversation")
	}
	return c.NoContent(http.StatusNoContent)
}

// ExportConversation renders a conversation as a static HTML page.
// GET /api/conversations/:id/export
func (h *Handler) ExportConversation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := conversationID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid conversation ID"})
	}

	page, err := h.service.ExportConversation(ctx, id)
	if err != nil {
		return h.writeError(c, err, "Failed to export conversation")
	}
	return c.HTMLBlob(http.StatusOK, page)
}

func conversationID(c echo.Context) (int, error) {
	return strconv.Atoi(c.Param("id"))
}
