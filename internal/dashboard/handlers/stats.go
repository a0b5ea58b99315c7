package handlers

import (
	"net/http"
	"time"

	"github.com/devopslab/userboard/internal/dashboard/backend"
	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	client  *backend.Client
	service string
	version string
	env     string
}

func NewStatsHandler(client *backend.Client, service, version, env string) *StatsHandler {
	return &StatsHandler{client: client, service: service, version: version, env: env}
}

// FrontendStats reports the dashboard's own service info plus a best-effort
// relay of the store's stats (null when the store is unreachable).
func (h *StatsHandler) FrontendStats(ctx *gin.Context) {
	stats, ok := h.client.Stats(ctx.Request.Context())

	backendStatus := "offline"
	var backendStats any

	if ok {
		backendStatus = "online"
		backendStats = stats
	}

	ctx.JSON(http.StatusOK, gin.H{
		"frontend_service": gin.H{
			"name":        h.service,
			"version":     h.version,
			"environment": h.env,
			"backend_url": h.client.BaseURL(),
		},
		"backend_status": backendStatus,
		"backend_stats":  backendStats,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}
