// Package catalog keeps the list of known airports and answers lookups by
// id and by position.
package catalog

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/airlinerank/aviation"
	"github.com/kbukum/airlinerank/datasource"
	"github.com/kbukum/airlinerank/errors"
	"github.com/kbukum/airlinerank/logger"
	"github.com/kbukum/airlinerank/observability"
	"github.com/kbukum/airlinerank/observable"
)

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the catalog's logger.
func WithLogger(log *logger.Logger) Option {
	return func(c *Catalog) { c.log = log }
}

// WithTracer sets the tracer used for load spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Catalog) { c.tracer = tracer }
}

// Catalog is an airport directory backed by an AirportsDataSource.
type Catalog struct {
	src datasource.AirportsDataSource

	airports *observable.State[[]aviation.Airport]
	loading  *observable.State[bool]
	errMsg   *observable.State[*string]

	mu    sync.RWMutex
	index map[string]aviation.Airport

	log    *logger.Logger
	tracer trace.Tracer
}

// New creates an empty catalog. Call Load or Refresh to fill it.
func New(src datasource.AirportsDataSource, opts ...Option) *Catalog {
	c := &Catalog{
		src:      src,
		airports: observable.New([]aviation.Airport{}),
		loading:  observable.New(false),
		errMsg:   observable.New[*string](nil),
		index:    map[string]aviation.Airport{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Get(logger.ComponentCatalog)
	}
	if c.tracer == nil {
		c.tracer = observability.Tracer("github.com/kbukum/airlinerank/catalog")
	}
	return c
}

// Airports publishes the loaded airports sorted by id.
func (c *Catalog) Airports() *observable.State[[]aviation.Airport] { return c.airports }

// Loading is true while a load is running.
func (c *Catalog) Loading() *observable.State[bool] { return c.loading }

// Error holds the description of the last failed load.
func (c *Catalog) Error() *observable.State[*string] { return c.errMsg }

// Load starts loading airports and returns immediately.
func (c *Catalog) Load(ctx context.Context) {
	go func() {
		// Refresh publishes and logs its own failure.
		_ = c.Refresh(ctx)
	}()
}

// Refresh loads airports and waits for the result. On failure the error
// description is published, the catalog is emptied and the error returned.
func (c *Catalog) Refresh(ctx context.Context) error {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, observability.SpanCatalogLoad)
	defer span.End()

	c.loading.Next(true)
	defer c.loading.Next(false)

	type outcome struct {
		airports []aviation.Airport
		err      error
	}
	results := make(chan outcome, 1)
	var once sync.Once
	c.src.LoadAirports(ctx, func(airports []aviation.Airport, err error) {
		once.Do(func() { results <- outcome{airports, err} })
	})

	var out outcome
	select {
	case out = <-results:
	case <-ctx.Done():
		out.err = ctx.Err()
	}

	if out.err != nil {
		msg := errors.Describe(errors.SourceFetchFailed("airports", out.err))
		c.errMsg.Next(&msg)
		c.publish(nil)
		span.RecordError(out.err)
		c.log.WithContext(ctx).Error("Loading airports failed", logger.MergeWithError(nil, out.err))
		return out.err
	}

	n := c.publish(out.airports)
	span.SetAttributes(attribute.Int(observability.AttrRecords, n))
	c.log.WithContext(ctx).Info("Airports loaded", logger.Timed(start, logger.FieldCount, n))
	return nil
}

// publish indexes airports (last duplicate wins) and publishes them sorted
// by id. It returns the number of distinct airports.
func (c *Catalog) publish(airports []aviation.Airport) int {
	index := make(map[string]aviation.Airport, len(airports))
	for _, a := range airports {
		index[a.ID] = a
	}
	sorted := make([]aviation.Airport, 0, len(index))
	for _, a := range index {
		sorted = append(sorted, a)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	c.mu.Lock()
	c.index = index
	c.mu.Unlock()
	c.airports.Next(sorted)
	return len(sorted)
}

// Lookup returns the airport with the given id.
func (c *Catalog) Lookup(id string) (aviation.Airport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.index[id]
	if !ok {
		return aviation.Airport{}, errors.NotFound("airport", id)
	}
	return a, nil
}

// Nearest returns the airport closest to pos and its distance in km.
// Ties go to the smaller id.
func (c *Catalog) Nearest(pos aviation.Coordinate) (aviation.Airport, float64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var (
		best  aviation.Airport
		bestD = math.Inf(1)
	)
	for _, a := range c.index {
		d := pos.DistanceTo(a.Coordinate)
		if d < bestD || (d == bestD && a.ID < best.ID) {
			best, bestD = a, d
		}
	}
	if math.IsInf(bestD, 1) {
		return aviation.Airport{}, 0, errors.NotFound("airport", "")
	}
	return best, bestD, nil
}
