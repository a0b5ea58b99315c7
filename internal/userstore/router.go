package userstore

import (
	"log/slog"
	"net/http"

	"github.com/devopslab/userboard/internal/config"
	"github.com/devopslab/userboard/internal/httpx"
	"github.com/devopslab/userboard/internal/observability"
	"github.com/devopslab/userboard/internal/store/memory"
	"github.com/devopslab/userboard/internal/userstore/handlers"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const (
	ServiceName = "backend-user-service"
	Version     = "1.0.0"

	maxBodyBytes = 1 << 20 // 1 MiB
)

func NewRouter(cfg config.Config, log *slog.Logger, store *memory.UsersRepo, reg *prometheus.Registry) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.CustomRecovery(func(ctx *gin.Context, err any) {
		log.Error("panic recovered", "err", err, "path", ctx.Request.URL.Path)
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}))
	r.Use(httpx.RequestID())
	r.Use(httpx.RequestLogger(log))
	r.Use(httpx.SecurityHeaders(false))
	r.Use(httpx.CORSMiddleware(nil))
	r.Use(httpx.MaxBodyBytes(maxBodyBytes))
	r.Use(otelgin.Middleware(ServiceName))

	prom := observability.NewProm(reg, "userstore")
	r.Use(prom.GinHandleMiddleware())
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Routes
	health := handlers.NewHealthHandler(ServiceName, Version)
	r.GET("/health", health.Health)

	usersHandler := handlers.NewUsersHandler(store)
	statsHandler := handlers.NewStatsHandler(store, ServiceName, Version, cfg.Env)

	api := r.Group("/api")
	api.GET("/users", usersHandler.ListUsers)
	api.POST("/users", usersHandler.CreateUser)
	api.GET("/users/:id", usersHandler.GetUserByID)
	api.PUT("/users/:id", usersHandler.UpdateUser)
	api.DELETE("/users/:id", usersHandler.DeleteUser)
	api.GET("/stats", statsHandler.Stats)

	r.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})

	return r
}
