package utils

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/moderation/internal/shared/constants"
	"github.com/orris-inc/moderation/internal/shared/errors"
)

func recordResponse(t *testing.T, write func(c *gin.Context)) (int, APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(constants.ContextKeyRequestID, "req-1")

	write(c)

	var resp APIResponse
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestErrorResponseWithError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantType    string
		wantMessage string
	}{
		{
			name:        "app error keeps code",
			err:         fmt.Errorf("wrapped: %w", errors.NewNotFoundError("user not found", "u-1")),
			wantCode:    http.StatusNotFound,
			wantType:    string(errors.ErrorTypeNotFound),
			wantMessage: "user not found",
		},
		{
			name:        "plain error hidden",
			err:         fmt.Errorf("dial tcp 10.0.0.1:3306: refused"),
			wantCode:    http.StatusInternalServerError,
			wantType:    string(errors.ErrorTypeInternal),
			wantMessage: constants.ErrMsgInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := recordResponse(t, func(c *gin.Context) { ErrorResponseWithError(c, tt.err) })

			assert.Equal(t, tt.wantCode, code)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantType, resp.Error.Type)
			assert.Equal(t, tt.wantMessage, resp.Error.Message)
			assert.Equal(t, "req-1", resp.RequestID)
		})
	}
}

func TestErrorResponse_TypeFromStatus(t *testing.T) {
	code, resp := recordResponse(t, func(c *gin.Context) {
		ErrorResponse(c, http.StatusTooManyRequests, "slow down")
	})
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, "rate_limited", resp.Error.Type)
}

func TestCreatedResponse_DefaultMessage(t *testing.T) {
	code, resp := recordResponse(t, func(c *gin.Context) {
		CreatedResponse(c, map[string]string{"id": "r-1"})
	})
	assert.Equal(t, http.StatusCreated, code)
	assert.True(t, resp.Success)
	assert.Equal(t, "Resource created successfully", resp.Message)
	assert.Equal(t, map[string]any{"id": "r-1"}, resp.Data)
}
