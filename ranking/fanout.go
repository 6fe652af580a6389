package ranking

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/airlinerank/aviation"
	"github.com/kbukum/airlinerank/errors"
	"github.com/kbukum/airlinerank/logger"
	"github.com/kbukum/airlinerank/observability"
)

const sourceCount = 3

// inputs is what one cycle joins. A failed source contributes an empty list.
type inputs struct {
	airlines []aviation.Airline
	airports []aviation.Airport
	flights  []aviation.Flight
	failed   int
}

// fetchAll issues the three loads concurrently and returns once all of them
// have settled, in whatever order they finish.
func (p *Pipeline) fetchAll(ctx context.Context) inputs {
	var (
		in        inputs
		failed    atomic.Int32
		wg        sync.WaitGroup
		panicOnce sync.Once
		panicked  any
	)
	countFailure := func(ok bool) {
		if !ok {
			failed.Add(1)
		}
	}
	// The first panic of a fetch goroutine is raised again on the cycle's
	// goroutine once every fetch has settled.
	recoverFetch := func() {
		if r := recover(); r != nil {
			panicOnce.Do(func() { panicked = r })
		}
	}

	wg.Add(sourceCount)
	go func() {
		defer wg.Done()
		defer recoverFetch()
		var ok bool
		in.airlines, ok = fetch(ctx, p, "airlines", p.sources.Airlines.LoadAirlines)
		countFailure(ok)
	}()
	go func() {
		defer wg.Done()
		defer recoverFetch()
		var ok bool
		in.airports, ok = fetch(ctx, p, "airports", p.sources.Airports.LoadAirports)
		countFailure(ok)
	}()
	go func() {
		defer wg.Done()
		defer recoverFetch()
		var ok bool
		in.flights, ok = fetch(ctx, p, "flights", p.sources.Flights.LoadFlights)
		countFailure(ok)
	}()
	wg.Wait()
	if panicked != nil {
		panic(panicked)
	}

	in.failed = int(failed.Load())
	return in
}

type outcome[T any] struct {
	items []T
	err   error
}

// fetch calls load and waits for its first callback, the fetch timeout or
// ctx, whichever comes first. Later callbacks are dropped. On failure the
// error is published and an empty list returned.
func fetch[T any](ctx context.Context, p *Pipeline, source string, load func(context.Context, func([]T, error))) ([]T, bool) {
	ctx, span := p.tracer.Start(ctx, observability.SpanSourceFetch,
		trace.WithAttributes(attribute.String(observability.AttrSource, source)))
	defer span.End()

	results := make(chan outcome[T], 1)
	var calls atomic.Int32
	load(ctx, func(items []T, err error) {
		if calls.Add(1) > 1 {
			p.log.Warn("Data source answered more than once, ignoring", logger.Fields(
				logger.FieldSource, source,
			))
			return
		}
		results <- outcome[T]{items: items, err: err}
	})

	var timeout <-chan time.Time
	if p.fetchTimeout > 0 {
		timer := time.NewTimer(p.fetchTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	var out outcome[T]
	select {
	case out = <-results:
	default:
		select {
		case out = <-results:
		case <-timeout:
			out.err = errors.Timeout(source)
		case <-ctx.Done():
			out.err = ctx.Err()
		}
	}

	if out.err != nil {
		p.fail(ctx, source, out.err)
		span.RecordError(out.err)
		span.SetStatus(codes.Error, errors.Describe(out.err))
		return []T{}, false
	}
	if out.items == nil {
		out.items = []T{}
	}
	span.SetAttributes(attribute.Int(observability.AttrRecords, len(out.items)))
	return out.items, true
}

// fail publishes the description of err on the error state.
func (p *Pipeline) fail(ctx context.Context, source string, err error) {
	msg := errors.Describe(errors.SourceFetchFailed(source, err))
	p.errMsg.Next(&msg)

	code := string(errors.ErrCodeSourceFetchFailed)
	if appErr, ok := errors.AsAppError(err); ok {
		code = string(appErr.Code)
	}
	if p.metrics != nil {
		p.metrics.RecordFetchFailure(ctx, source, code)
	}
	p.log.WithContext(ctx).Warn("Data source failed", logger.MergeWithError(logger.Fields(
		logger.FieldSource, source,
		"code", code,
	), err))
}
