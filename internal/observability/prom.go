package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type Prom struct {
	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec
	InFlight         *prometheus.GaugeVec

	// Upstream calls from the dashboard to the user store.
	BackendRequestsTotal    *prometheus.CounterVec
	BackendRequestsDuration *prometheus.HistogramVec
}

func NewProm(reg prometheus.Registerer, service string) *Prom {
	p := &Prom{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "userboard",
				Subsystem: service,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "userboard",
				Subsystem: service,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency distributions.",
				// Sane initial defaults
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "route", "status"},
		),
		InFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "userboard",
				Subsystem: service,
				Name:      "http_in_flight_requests",
				Help:      "Current number of in-flight HTTP requests.",
			},
			[]string{"method", "route"},
		),
		BackendRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "userboard",
				Subsystem: service,
				Name:      "backend_requests_total",
				Help:      "Calls made to the user store by endpoint and status.",
			},
			[]string{"endpoint", "status"},
		),
		BackendRequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "userboard",
				Subsystem: service,
				Name:      "backend_request_duration_seconds",
				Help:      "User store call latency by endpoint and status.",
				Buckets:   []float64{0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.35, 0.5, 1, 2, 5},
			},
			[]string{"endpoint", "status"},
		),
	}
	reg.MustRegister(p.RequestsTotal, p.RequestsDuration, p.InFlight, p.BackendRequestsTotal, p.BackendRequestsDuration)

	return p
}

// ObserveBackendCall records one dashboard-to-store call. A transport failure
// is recorded under the synthetic status it was mapped to (500).
func (p *Prom) ObserveBackendCall(endpoint string, status int, elapsed time.Duration) {
	s := strconv.Itoa(status)
	p.BackendRequestsTotal.WithLabelValues(endpoint, s).Inc()
	p.BackendRequestsDuration.WithLabelValues(endpoint, s).Observe(elapsed.Seconds())
}

func (p *Prom) GinHandleMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		// route template is only available after routing; best effort:
		route := ctx.FullPath()

		if route == "" {
			route = "unmatched"
		}

		method := ctx.Request.Method
		p.InFlight.WithLabelValues(method, route).Inc()
		defer p.InFlight.WithLabelValues(method, route).Dec()
		ctx.Next()

		status := strconv.Itoa(ctx.Writer.Status())
		secs := time.Since(start).Seconds()

		p.RequestsTotal.WithLabelValues(method, route, status).Inc()
		p.RequestsDuration.WithLabelValues(method, route, status).Observe(secs)
	}
}
