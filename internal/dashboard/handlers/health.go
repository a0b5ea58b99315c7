package handlers

import (
	"net/http"
	"time"

	"github.com/devopslab/userboard/internal/dashboard/backend"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	client  *backend.Client
	service string
	version string
}

func NewHealthHandler(client *backend.Client, service, version string) *HealthHandler {
	return &HealthHandler{client: client, service: service, version: version}
}

// Health always answers 200 for the dashboard itself and reports the
// observed store health alongside.
func (h *HealthHandler) Health(ctx *gin.Context) {
	backendStatus := "unhealthy"

	if h.client.Healthy(ctx.Request.Context()) {
		backendStatus = "healthy"
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"service":        h.service,
		"backend_status": backendStatus,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"version":        h.version,
	})
}
