package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/zeon-projects/beach-cleanup-api/pkg/errors"
)

// Envelope is the wire contract shared with the registration frontend:
// success responses carry {message, id?, data}, failures {message, error}.
type Envelope struct {
	Message string      `json:"message"`
	ID      string      `json:"id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// JSON sends a success response.
func JSON(c *gin.Context, status int, message string, id string, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{Message: message, ID: id, Data: data})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, message string, id string, data interface{}) {
	JSON(c, http.StatusCreated, message, id, data)
}

// Error sends a failure response derived from the typed error. The
// underlying cause is only included for server-side failures.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	envelope := Envelope{Message: appErr.Message}
	if appErr.Status >= http.StatusInternalServerError && appErr.Err != nil {
		envelope.Error = appErr.Err.Error()
	}
	c.JSON(appErr.Status, envelope)
}
