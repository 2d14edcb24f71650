package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/weienlee/wset/internal/apperrors"
)

// sendSuccess writes the uniform success body. The caller should return
// its result.
func sendSuccess(c echo.Context, content interface{}) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"content": content,
	})
}

// sendError writes the uniform error body using the envelope's status
// code and verbatim message.
func sendError(c echo.Context, err error) error {
	return c.JSON(apperrors.CodeOf(err), echo.Map{
		"success": false,
		"err":     apperrors.MessageOf(err),
	})
}

// sendBadRequest covers transport-level failures (malformed payloads,
// unparsable query parameters) that never reach the repositories.
func sendBadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"success": false,
		"err":     message,
	})
}
