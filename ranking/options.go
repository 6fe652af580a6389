package ranking

import (
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/airlinerank/logger"
	"github.com/kbukum/airlinerank/observability"
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithFetchTimeout treats a data source that has not answered within d as
// failed. Zero, the default, waits indefinitely.
func WithFetchTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		p.fetchTimeout = d
	}
}

// WithLogger sets the pipeline's logger.
func WithLogger(log *logger.Logger) Option {
	return func(p *Pipeline) {
		p.log = log
	}
}

// WithTracer sets the tracer used for cycle and fetch spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(p *Pipeline) {
		p.tracer = tracer
	}
}

// WithMetrics sets the instruments recorded after every cycle.
func WithMetrics(m *observability.RankingMetrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}
