package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	store   UsersStore
	service string
	version string
	env     string
}

func NewStatsHandler(store UsersStore, service, version, env string) *StatsHandler {
	return &StatsHandler{store: store, service: service, version: version, env: env}
}

func (h *StatsHandler) Stats(ctx *gin.Context) {
	total, err := h.store.Count(ctx.Request.Context())

	if err != nil {
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"total_users": total,
		"service_info": gin.H{
			"name":        h.service,
			"version":     h.version,
			"environment": h.env,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
