package main

import (
	"context"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/airlinerank/catalog"
	"github.com/kbukum/airlinerank/component"
	"github.com/kbukum/airlinerank/observability"
)

// telemetryComponent owns the OTLP tracer and meter providers.
type telemetryComponent struct {
	cfg observability.Config
	tp  *sdktrace.TracerProvider
	mp  *sdkmetric.MeterProvider
}

func (t *telemetryComponent) Name() string { return "telemetry" }

func (t *telemetryComponent) Start(ctx context.Context) error {
	tp, err := observability.InitTracer(ctx, t.cfg)
	if err != nil {
		return fmt.Errorf("initializing tracer: %w", err)
	}
	mp, err := observability.InitMeter(ctx, t.cfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return fmt.Errorf("initializing meter: %w", err)
	}
	t.tp, t.mp = tp, mp
	return nil
}

func (t *telemetryComponent) Stop(ctx context.Context) error {
	// ctx may be derived from a cancelled signal context; flush regardless.
	flushCtx := context.WithoutCancel(ctx)
	var firstErr error
	if t.mp != nil {
		firstErr = t.mp.Shutdown(flushCtx)
	}
	if t.tp != nil {
		if err := t.tp.Shutdown(flushCtx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (t *telemetryComponent) Health(context.Context) component.Health {
	h := component.Health{Name: t.Name(), Status: component.StatusHealthy, Message: t.cfg.Endpoint}
	if t.tp == nil || t.mp == nil {
		h.Status = component.StatusUnhealthy
		h.Message = "not started"
	}
	return h
}

// catalogComponent loads the airport catalog on start.
type catalogComponent struct {
	cat *catalog.Catalog
}

func (c *catalogComponent) Name() string { return "catalog" }

func (c *catalogComponent) Start(ctx context.Context) error {
	if err := c.cat.Refresh(ctx); err != nil {
		return fmt.Errorf("loading airports: %w", err)
	}
	return nil
}

func (c *catalogComponent) Stop(context.Context) error { return nil }

func (c *catalogComponent) Health(context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	n := len(c.cat.Airports().Value())
	switch msg := c.cat.Error().Value(); {
	case msg != nil && n == 0:
		h.Status, h.Message = component.StatusUnhealthy, *msg
	case msg != nil:
		h.Status, h.Message = component.StatusDegraded, *msg
	default:
		h.Message = fmt.Sprintf("%d airports", n)
	}
	return h
}
