package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RankingMetrics holds the instruments recorded by ranking cycles.
type RankingMetrics struct {
	cycleTotal    metric.Int64Counter
	cycleDuration metric.Float64Histogram
	fetchFailures metric.Int64Counter
	rankedTotal   metric.Int64Histogram
}

// NewRankingMetrics creates the ranking instruments on the given meter.
func NewRankingMetrics(meter metric.Meter) (*RankingMetrics, error) {
	cycleTotal, err := meter.Int64Counter("ranking.cycle.total",
		metric.WithDescription("Total number of ranking cycles"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ranking.cycle.total counter: %w", err)
	}

	cycleDuration, err := meter.Float64Histogram("ranking.cycle.duration",
		metric.WithDescription("Duration of ranking cycles in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ranking.cycle.duration histogram: %w", err)
	}

	fetchFailures, err := meter.Int64Counter("ranking.fetch.failures",
		metric.WithDescription("Data source fetches that failed, by source and error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ranking.fetch.failures counter: %w", err)
	}

	rankedTotal, err := meter.Int64Histogram("ranking.airlines",
		metric.WithDescription("Number of airlines in a published ranking"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ranking.airlines histogram: %w", err)
	}

	return &RankingMetrics{
		cycleTotal:    cycleTotal,
		cycleDuration: cycleDuration,
		fetchFailures: fetchFailures,
		rankedTotal:   rankedTotal,
	}, nil
}

// RecordCycle records a completed ranking cycle.
func (m *RankingMetrics) RecordCycle(ctx context.Context, origin, status string, ranked int, duration time.Duration) {
	m.cycleTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrOrigin, origin),
		attribute.String(AttrStatus, status),
	))
	m.cycleDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(AttrStatus, status),
	))
	m.rankedTotal.Record(ctx, int64(ranked))
}

// RecordFetchFailure records a failed data source fetch.
func (m *RankingMetrics) RecordFetchFailure(ctx context.Context, source, code string) {
	m.fetchFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrSource, source),
		attribute.String(AttrErrorCode, code),
	))
}
