package middleware

import (
	"errors"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/moderation/internal/shared/constants"
	"github.com/orris-inc/moderation/internal/shared/logger"
	"github.com/orris-inc/moderation/internal/shared/utils"
)

var redactedHeaders = map[string]bool{
	"Authorization": true,
	"Cookie":        true,
}

// Recovery turns a handler panic into a 500 envelope. Panics caused by a
// client hanging up are logged and the request is dropped.
func Recovery(log logger.Interface) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		fields := []any{
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"request_id", c.GetString(ContextKeyRequestID),
			"actor_id", c.GetString(ContextKeyActorID),
		}

		if err, ok := recovered.(error); ok && isBrokenConnection(err) {
			log.Warnw("client connection broken", append(fields, "error", err)...)
			c.Abort()
			return
		}

		log.Errorw("panic recovered", append(fields,
			"headers", safeHeaders(c.Request.Header),
			"panic", recovered,
			"stack", string(debug.Stack()),
		)...)
		utils.ErrorResponse(c, http.StatusInternalServerError, constants.ErrMsgInternalServerError)
		c.Abort()
	})
}

func safeHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if redactedHeaders[k] {
			out[k] = "*"
			continue
		}
		out[k] = strings.Join(v, ",")
	}
	return out
}

func isBrokenConnection(err error) bool {
	if errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}
	var sysErr *os.SyscallError
	if !errors.As(opErr.Err, &sysErr) {
		return false
	}
	msg := strings.ToLower(sysErr.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
