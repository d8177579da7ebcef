package telemetry

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/depot/internal/core/ports"
)

// SpanLogger implements sdktrace.SpanProcessor by writing each finished span
// to the logger at debug level.
type SpanLogger struct {
	log ports.Logger
}

// NewSpanLogger returns a SpanLogger writing to log.
func NewSpanLogger(log ports.Logger) *SpanLogger {
	return &SpanLogger{log: log}
}

// OnStart does nothing.
func (b *SpanLogger) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name, duration, attributes and failure status.
func (b *SpanLogger) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.log == nil || !s.SpanContext().IsValid() {
		return
	}
	b.log.Debug(FormatSpan(s.Name(), s.EndTime().Sub(s.StartTime()), s))
}

// FormatSpan renders a finished span on one line with sorted attributes.
func FormatSpan(name string, took time.Duration, s sdktrace.ReadOnlySpan) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "span %s %s", name, took.Round(time.Millisecond))

	attrs := s.Attributes()
	parts := make([]string, 0, len(attrs))
	for _, kv := range attrs {
		parts = append(parts, string(kv.Key)+"="+kv.Value.Emit())
	}
	slices.Sort(parts)
	for _, p := range parts {
		sb.WriteString(" " + p)
	}

	if st := s.Status(); st.Code == codes.Error {
		desc := st.Description
		if desc == "" {
			desc = "failed"
		}
		sb.WriteString(" error=" + desc)
	}

	return sb.String()
}

// ForceFlush does nothing.
func (b *SpanLogger) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *SpanLogger) Shutdown(_ context.Context) error {
	return nil
}
