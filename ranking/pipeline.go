package ranking

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/airlinerank/aviation"
	"github.com/kbukum/airlinerank/datasource"
	"github.com/kbukum/airlinerank/logger"
	"github.com/kbukum/airlinerank/observability"
	"github.com/kbukum/airlinerank/observable"
)

const instrumentationName = "github.com/kbukum/airlinerank/ranking"

// Sources are the three data sources a Pipeline joins.
type Sources struct {
	Airlines datasource.AirlinesDataSource
	Airports datasource.AirportsDataSource
	Flights  datasource.FlightsDataSource
}

// Pipeline computes airline rankings and publishes them.
type Pipeline struct {
	sources Sources

	result  *observable.State[[]aviation.Airline]
	loading *observable.State[bool]
	errMsg  *observable.State[*string]

	// cycles serializes LoadRanking calls.
	cycles *observable.Serial

	fetchTimeout time.Duration
	log          *logger.Logger
	tracer       trace.Tracer
	metrics      *observability.RankingMetrics
}

// New creates a Pipeline over the given sources.
func New(sources Sources, opts ...Option) *Pipeline {
	p := &Pipeline{
		sources: sources,
		result:  observable.New([]aviation.Airline{}),
		loading: observable.New(false),
		errMsg:  observable.New[*string](nil),
		cycles:  observable.NewSerial("ranking"),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logger.Get(logger.ComponentRanking)
	}
	if p.tracer == nil {
		p.tracer = observability.Tracer(instrumentationName)
	}
	if p.metrics == nil {
		m, err := observability.NewRankingMetrics(observability.Meter(instrumentationName))
		if err != nil {
			p.log.Warn("ranking metrics disabled", logger.MergeWithError(nil, err))
		}
		p.metrics = m
	}
	return p
}

// Result publishes the latest ranking: airlines with a positive total
// distance from the origin, nearest first. Initially empty.
func (p *Pipeline) Result() *observable.State[[]aviation.Airline] { return p.result }

// Loading is true while a cycle is running.
func (p *Pipeline) Loading() *observable.State[bool] { return p.loading }

// Error holds the description of the most recent fetch failure, or nil if
// none has happened yet.
func (p *Pipeline) Error() *observable.State[*string] { return p.errMsg }

// LoadRanking starts a ranking cycle for origin and returns immediately.
// Cycles run one at a time in the order they were requested. Cancelling ctx
// fails the fetches still pending; the cycle still publishes a result. A
// cycle that panics publishes an empty result and Loading=false.
func (p *Pipeline) LoadRanking(ctx context.Context, origin aviation.Airport) {
	p.cycles.Execute(func() {
		p.run(ctx, origin)
	})
}

func (p *Pipeline) run(ctx context.Context, origin aviation.Airport) {
	start := time.Now()
	ctx, span := p.tracer.Start(ctx, observability.SpanRankingCycle,
		trace.WithAttributes(attribute.String(observability.AttrOrigin, origin.ID)))
	defer span.End()

	p.loading.Next(true)
	defer func() {
		// Close the bracket before the executor logs the panic.
		if r := recover(); r != nil {
			span.SetStatus(codes.Error, fmt.Sprint(r))
			p.result.Next([]aviation.Airline{})
			p.loading.Next(false)
			panic(r)
		}
	}()

	in := p.fetchAll(ctx)
	totals := Accumulate(origin, in.flights, IndexAirports(in.airports))
	ranked := Rank(in.airlines, totals)

	p.result.Next(ranked)
	p.loading.Next(false)

	status := observability.StatusOK
	switch {
	case in.failed == sourceCount:
		status = observability.StatusError
	case in.failed > 0:
		status = observability.StatusPartial
	}
	duration := time.Since(start)
	span.SetAttributes(
		attribute.String(observability.AttrStatus, status),
		attribute.Int(observability.AttrRanked, len(ranked)),
	)
	if p.metrics != nil {
		p.metrics.RecordCycle(ctx, origin.ID, status, len(ranked), duration)
	}
	p.log.WithContext(ctx).Info("Ranking published", logger.Fields(
		logger.FieldOrigin, origin.ID,
		logger.FieldCount, len(ranked),
		logger.FieldDuration, duration.Milliseconds(),
		observability.AttrStatus, status,
	))
}
