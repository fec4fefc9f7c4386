package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type envelope map[string]any

func respondSuccess(c echo.Context, fields envelope) error {
	body := envelope{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	return c.JSON(http.StatusOK, body)
}

// respondFailure masks the failure as HTTP 200 with success=false; the web
// client branches on the success flag, not the status code.
func respondFailure(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, envelope{
		"success": false,
		"message": message,
	})
}
