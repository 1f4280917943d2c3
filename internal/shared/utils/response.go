package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/moderation/internal/shared/constants"
	"github.com/orris-inc/moderation/internal/shared/errors"
)

// APIResponse is the envelope every JSON endpoint answers with.
type APIResponse struct {
	Success   bool       `json:"success"`
	Data      any        `json:"data,omitempty"`
	Error     *ErrorInfo `json:"error,omitempty"`
	Message   string     `json:"message,omitempty"`
	RequestID string     `json:"request_id,omitempty"`
}

type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func respond(c *gin.Context, statusCode int, resp APIResponse) {
	resp.RequestID = c.GetString(constants.ContextKeyRequestID)
	c.JSON(statusCode, resp)
}

// SuccessResponse sends data with statusCode and an optional message.
func SuccessResponse(c *gin.Context, statusCode int, message string, data any) {
	respond(c, statusCode, APIResponse{Success: true, Data: data, Message: message})
}

// CreatedResponse sends a 201 with data.
func CreatedResponse(c *gin.Context, data any, message ...string) {
	msg := "Resource created successfully"
	if len(message) > 0 {
		msg = message[0]
	}
	respond(c, http.StatusCreated, APIResponse{Success: true, Data: data, Message: msg})
}

// ErrorResponse sends a plain error for failures raised outside the
// application layer, such as rate limiting or a recovered panic.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	respond(c, statusCode, APIResponse{
		Error: &ErrorInfo{Type: errorTypeForStatus(statusCode), Message: message},
	})
}

// ErrorResponseWithError maps an AppError onto its status code. Any other
// error becomes a 500 without leaking its text.
func ErrorResponseWithError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		respond(c, http.StatusInternalServerError, APIResponse{
			Error: &ErrorInfo{
				Type:    string(errors.ErrorTypeInternal),
				Message: constants.ErrMsgInternalServerError,
			},
		})
		return
	}

	respond(c, appErr.Code, APIResponse{
		Error: &ErrorInfo{
			Type:    string(appErr.Type),
			Message: appErr.Message,
			Details: appErr.Details,
		},
	})
}

func NoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func errorTypeForStatus(statusCode int) string {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return "rate_limited"
	case statusCode == http.StatusNotFound:
		return string(errors.ErrorTypeNotFound)
	case statusCode >= http.StatusInternalServerError:
		return string(errors.ErrorTypeInternal)
	default:
		return "bad_request"
	}
}
