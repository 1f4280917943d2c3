package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/moderation/internal/shared/errors"
)

// RequireParam returns a non-empty URL path parameter.
// entityName is used in error messages (e.g., "user", "ticket").
func RequireParam(c *gin.Context, paramName, entityName string) (string, error) {
	value := strings.TrimSpace(c.Param(paramName))
	if value == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}
	return value, nil
}

// QueryBool parses an optional boolean query parameter. It returns nil when
// the parameter is absent.
func QueryBool(c *gin.Context, key string) (*bool, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errors.NewValidationError("invalid "+key, raw)
	}
	return &v, nil
}

// QueryTime parses an optional RFC 3339 timestamp query parameter.
func QueryTime(c *gin.Context, key string) (*time.Time, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errors.NewValidationError("invalid "+key, "expected RFC 3339 timestamp")
	}
	t = t.UTC()
	return &t, nil
}

// QueryInt parses an optional integer query parameter, falling back to
// defaultVal when absent.
func QueryInt(c *gin.Context, key string, defaultVal int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationError("invalid "+key, raw)
	}
	return n, nil
}
