package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/orris-inc/moderation/internal/shared/constants"
)

const (
	HeaderActorID        = constants.HeaderXActorID
	HeaderIdempotencyKey = constants.HeaderIdempotencyKey
	HeaderRequestID      = constants.HeaderXRequestID

	ContextKeyActorID   = constants.ContextKeyActorID
	ContextKeyRequestID = constants.ContextKeyRequestID

	// DefaultActorID is recorded when a request names no actor.
	DefaultActorID = "system"
)

// Actor stores the acting moderator from X-Actor-ID on the context.
// Authentication happens in front of this service; the header is trusted.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := strings.TrimSpace(c.GetHeader(HeaderActorID))
		if actorID == "" {
			actorID = DefaultActorID
		}
		c.Set(ContextKeyActorID, actorID)
		c.Next()
	}
}

// RequestID propagates X-Request-ID, generating one when absent.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, requestID)
		c.Header(HeaderRequestID, requestID)
		c.Next()
	}
}

// ActorID returns the actor set by Actor, or DefaultActorID.
func ActorID(c *gin.Context) string {
	if v := c.GetString(ContextKeyActorID); v != "" {
		return v
	}
	return DefaultActorID
}

// IdempotencyKey returns the trimmed Idempotency-Key header.
func IdempotencyKey(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(HeaderIdempotencyKey))
}
