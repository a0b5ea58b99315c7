package observability

import (
	"context"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"
)

// NewLogger builds the JSON slog logger shared by both services. Development
// gets debug level; trace and span ids are attached when a span is recording.
func NewLogger(env string) *slog.Logger {
	level := slog.LevelInfo

	if env == "development" {
		level = slog.LevelDebug
	}

	json := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(spanHandler{Handler: json})
}

// spanHandler stamps every record with the trace_id and span_id of the span
// carried on its context. Records without a recording span pass through
// untouched.
type spanHandler struct {
	slog.Handler
}

func (h spanHandler) Handle(ctx context.Context, rec slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		rec.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	return h.Handler.Handle(ctx, rec)
}

func (h spanHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return spanHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h spanHandler) WithGroup(name string) slog.Handler {
	return spanHandler{Handler: h.Handler.WithGroup(name)}
}
