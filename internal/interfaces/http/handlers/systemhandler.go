package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/moderation/internal/shared/version"
)

// HealthProbe checks one dependency. A nil error means healthy.
type HealthProbe func(ctx context.Context) error

type SystemHandler struct {
	probes map[string]HealthProbe
}

func NewSystemHandler(probes map[string]HealthProbe) *SystemHandler {
	return &SystemHandler{probes: probes}
}

// HealthCheck handles GET /health. It reports 503 when any probe fails.
func (h *SystemHandler) HealthCheck(c *gin.Context) {
	checks := make(map[string]string, len(h.probes))
	status := http.StatusOK
	for name, probe := range h.probes {
		if err := probe(c.Request.Context()); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	body := gin.H{
		"status":  "healthy",
		"service": "moderation",
		"checks":  checks,
	}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	c.JSON(status, body)
}

// Version handles GET /version to return the current application version
func (h *SystemHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, version.Get())
}
