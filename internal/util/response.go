package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/viewtube/backend/internal/errors"
	"github.com/viewtube/backend/internal/logger"
	"go.uber.org/zap"
)

// SuccessEnvelope is the uniform wrapper for every successful response
type SuccessEnvelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// ErrorEnvelope is the uniform wrapper for every error response
type ErrorEnvelope struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// Respond sends a success envelope with the given status, payload and message
func Respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, SuccessEnvelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// RespondWithAPIError sends a structured error envelope
func RespondWithAPIError(c *gin.Context, apiErr *errors.APIError) {
	if apiErr.Status >= http.StatusInternalServerError {
		logger.Log.Error("API error",
			zap.String("code", string(apiErr.Code)),
			zap.String("message", apiErr.Message),
			zap.Int("status", apiErr.Status),
		)
	} else {
		logger.Log.Warn("API error",
			zap.String("code", string(apiErr.Code)),
			zap.String("message", apiErr.Message),
		)
	}

	errs := apiErr.Errors
	if errs == nil {
		errs = []string{}
	}
	c.JSON(apiErr.Status, ErrorEnvelope{
		StatusCode: apiErr.Status,
		Message:    apiErr.Message,
		Success:    false,
		Errors:     errs,
	})
}

// RespondUnauthorized sends a 401 Unauthorized envelope
func RespondUnauthorized(c *gin.Context, message ...string) {
	msg := "user not authenticated"
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}
	RespondWithAPIError(c, errors.Unauthorized(msg))
}

// RespondNotFound sends a 404 Not Found envelope
func RespondNotFound(c *gin.Context, resource string) {
	RespondWithAPIError(c, errors.NotFound(resource))
}

// RespondBadRequest sends a 400 Bad Request envelope
func RespondBadRequest(c *gin.Context, message string) {
	RespondWithAPIError(c, errors.BadRequest(message))
}

// RespondForbidden sends a 403 Forbidden envelope
func RespondForbidden(c *gin.Context, message ...string) {
	msg := "action not allowed"
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}
	RespondWithAPIError(c, errors.Forbidden(msg))
}

// RespondInternalError sends a 500 Internal Server Error envelope
func RespondInternalError(c *gin.Context, message string) {
	RespondWithAPIError(c, errors.InternalError(message))
}

// RecoveryHandler converts a panic escaping a handler into the standard
// error envelope instead of leaking a raw fault.
func RecoveryHandler(c *gin.Context, recovered interface{}) {
	logger.Log.Error("panic recovered in handler", zap.Any("panic", recovered))
	RespondInternalError(c, "internal server error")
	c.Abort()
}
