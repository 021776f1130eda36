package handler

import (
	"net/http"

	"blog/internal/delivery/api/middleware"
	"blog/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
)

// TestHandler handles test endpoints for middleware validation
type TestHandler struct{}

// NewTestHandler creates a new TestHandler instance
func NewTestHandler() *TestHandler {
	return &TestHandler{}
}

// TestAuthMiddleware echoes the identity resolved from the bearer token.
func (h *TestHandler) TestAuthMiddleware(c echo.Context) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "CONTEXT_ERROR", "Identity not found in context")
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"message":  "Authentication middleware test successful",
		"userID":   identity.ID,
		"username": identity.Username,
		"status":   "authenticated",
	})
}

// TestPublicEndpoint tests a public endpoint (no authentication required)
func (h *TestHandler) TestPublicEndpoint(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]any{
		"message": "Public endpoint test successful",
		"status":  "public",
	})
}
