package main

import (
	"context"
	"fmt"
	"io"

	"github.com/kbukum/airlinerank/aviation"
	"github.com/kbukum/airlinerank/catalog"
	"github.com/kbukum/airlinerank/component"
	"github.com/kbukum/airlinerank/datasource"
	"github.com/kbukum/airlinerank/logger"
	"github.com/kbukum/airlinerank/observable"
	"github.com/kbukum/airlinerank/ranking"
)

// run loads the catalog, resolves the origin, runs one ranking cycle and
// writes the ranked table to out.
func run(ctx context.Context, cfg *Config, sel originSelector, out io.Writer) error {
	log := logger.Get(logger.ComponentApp)

	sources := newSources(cfg)
	cat := catalog.New(sources.Airports)

	registry := component.NewRegistry(nil)
	if cfg.Telemetry.Enabled {
		if err := registry.Register(&telemetryComponent{cfg: cfg.telemetry()}); err != nil {
			return err
		}
	}
	if err := registry.Register(&catalogComponent{cat: cat}); err != nil {
		return err
	}
	defer func() {
		if err := registry.StopAll(ctx); err != nil {
			log.Warn("shutdown incomplete", logger.MergeWithError(nil, err))
		}
	}()
	if err := registry.StartAll(ctx); err != nil {
		return err
	}
	for _, h := range registry.HealthAll(ctx) {
		log.Debug("Component ready", logger.Fields("component", h.Name, "status", h.Status, "message", h.Message))
	}

	origin, err := sel.resolve(cat)
	if err != nil {
		return fmt.Errorf("resolving origin %s: %w", sel, err)
	}
	log.Info("Ranking airlines", logger.Fields(logger.FieldOrigin, origin.ID))

	ranked, warning, err := rank(ctx, ranking.New(sources, ranking.WithFetchTimeout(cfg.Ranking.FetchTimeout)), origin)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, renderRanking(origin, ranked, warning))
	return err
}

// newSources builds the three file-backed data sources with logging, retry
// and record validation.
func newSources(cfg *Config) ranking.Sources {
	log := logger.Get(logger.ComponentDatasource)
	return ranking.Sources{
		Airlines: datasource.Airlines(datasource.Chain(
			datasource.WithLogging[aviation.Airline](log),
			datasource.WithRetry[aviation.Airline](cfg.retry()),
			datasource.WithValidation[aviation.Airline](),
		)(datasource.JSONFile[aviation.Airline]("airlines", cfg.Data.Airlines))),
		Airports: datasource.Airports(datasource.Chain(
			datasource.WithLogging[aviation.Airport](log),
			datasource.WithRetry[aviation.Airport](cfg.retry()),
			datasource.WithValidation[aviation.Airport](),
		)(datasource.JSONFile[aviation.Airport]("airports", cfg.Data.Airports))),
		Flights: datasource.Flights(datasource.Chain(
			datasource.WithLogging[aviation.Flight](log),
			datasource.WithRetry[aviation.Flight](cfg.retry()),
			datasource.WithValidation[aviation.Flight](),
		)(datasource.JSONFile[aviation.Flight]("flights", cfg.Data.Flights))),
	}
}

// rank runs one cycle on p and waits for it to finish. It returns the
// published ranking and the last fetch error message, if any.
func rank(ctx context.Context, p *ranking.Pipeline, origin aviation.Airport) ([]aviation.Airline, *string, error) {
	log := logger.Get(logger.ComponentApp)
	finished := make(chan struct{})

	started := false
	loadingID := p.Loading().Subscribe(observable.Main(), func(loading bool) {
		if loading {
			started = true
			return
		}
		if started {
			close(finished)
			started = false
		}
	})
	defer p.Loading().Unsubscribe(loadingID)

	errorID := p.Error().Subscribe(observable.Main(), func(msg *string) {
		if msg != nil {
			log.Warn("Data source failed", logger.Fields(logger.FieldError, *msg))
		}
	})
	defer p.Error().Unsubscribe(errorID)

	p.LoadRanking(ctx, origin)

	select {
	case <-finished:
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}
	return p.Result().Value(), p.Error().Value(), nil
}
