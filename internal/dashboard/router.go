package dashboard

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/devopslab/userboard/internal/config"
	"github.com/devopslab/userboard/internal/dashboard/backend"
	"github.com/devopslab/userboard/internal/dashboard/handlers"
	"github.com/devopslab/userboard/internal/httpx"
	"github.com/devopslab/userboard/internal/observability"
	"github.com/devopslab/userboard/web"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const (
	ServiceName = "frontend-dashboard"
	Version     = "1.0.0"

	maxBodyBytes = 1 << 20 // 1 MiB
)

func templates() *template.Template {
	return template.Must(
		template.New("").Funcs(template.FuncMap{
			// truncate counts runes, not bytes, so multi-byte names and
			// ids never get split mid-character.
			"truncate": func(s string, n int) string {
				r := []rune(s)
				if len(r) <= n {
					return s
				}
				return string(r[:n])
			},
		}).ParseFS(web.Templates, "templates/*.html"),
	)
}

func NewRouter(cfg config.Config, log *slog.Logger, reg *prometheus.Registry) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.SetHTMLTemplate(templates())

	// middleware

	r.Use(gin.CustomRecovery(func(ctx *gin.Context, err any) {
		log.Error("panic recovered", "err", err, "path", ctx.Request.URL.Path)
		ctx.Abort()
		ctx.HTML(http.StatusInternalServerError, "error_500.html", nil)
	}))
	r.Use(httpx.RequestID())
	r.Use(httpx.RequestLogger(log))
	r.Use(httpx.SecurityHeaders(true))
	r.Use(httpx.MaxBodyBytes(maxBodyBytes))
	r.Use(otelgin.Middleware(ServiceName))

	prom := observability.NewProm(reg, "dashboard")
	r.Use(prom.GinHandleMiddleware())
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// The store client is the dashboard's only dependency; per-request state
	// lives entirely in the handlers.
	client := backend.NewClient(cfg.BackendURL, log, prom)

	dash := handlers.NewDashboardHandler(client, Version)
	health := handlers.NewHealthHandler(client, ServiceName, Version)
	stats := handlers.NewStatsHandler(client, ServiceName, Version, cfg.Env)

	r.GET("/", dash.Dashboard)
	r.POST("/add_user", dash.AddUser)
	r.GET("/delete_user/:id", dash.DeleteUser)
	r.GET("/health", health.Health)
	r.GET("/api/frontend-stats", stats.FrontendStats)

	r.NoRoute(func(ctx *gin.Context) {
		ctx.HTML(http.StatusNotFound, "error_404.html", nil)
	})

	return r
}
