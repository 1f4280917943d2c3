package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantCode int
	}{
		{"validation", NewValidationError("bad"), ErrorTypeValidation, http.StatusBadRequest},
		{"not found", NewNotFoundError("missing", "u-1"), ErrorTypeNotFound, http.StatusNotFound},
		{"conflict", NewConflictError("taken"), ErrorTypeConflict, http.StatusConflict},
		{"persistence", NewPersistenceError("save failed"), ErrorTypePersistence, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "not_found: user not found (u-1)", NewNotFoundError("user not found", "u-1").Error())
	assert.Equal(t, "validation_error: bad cursor", NewValidationError("bad cursor").Error())
}

func TestGetAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", NewNotFoundError("report not found"))

	appErr := GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.True(t, IsNotFoundError(wrapped))
	assert.False(t, IsValidationError(wrapped))
	assert.False(t, IsPersistenceError(wrapped))
	assert.Nil(t, GetAppError(fmt.Errorf("plain")))
}
