package datasource

import (
	"context"

	"github.com/kbukum/airlinerank/aviation"
)

// AirlinesDataSource asynchronously loads every airline. Implementations call
// done exactly once, never before LoadAirlines returns.
type AirlinesDataSource interface {
	LoadAirlines(ctx context.Context, done func([]aviation.Airline, error))
}

// AirportsDataSource asynchronously loads every airport. Implementations call
// done exactly once, never before LoadAirports returns.
type AirportsDataSource interface {
	LoadAirports(ctx context.Context, done func([]aviation.Airport, error))
}

// FlightsDataSource asynchronously loads every flight. Implementations call
// done exactly once, never before LoadFlights returns.
type FlightsDataSource interface {
	LoadFlights(ctx context.Context, done func([]aviation.Flight, error))
}

// AirlinesFunc adapts a function to AirlinesDataSource.
type AirlinesFunc func(ctx context.Context, done func([]aviation.Airline, error))

// LoadAirlines calls f(ctx, done).
func (f AirlinesFunc) LoadAirlines(ctx context.Context, done func([]aviation.Airline, error)) {
	f(ctx, done)
}

// AirportsFunc adapts a function to AirportsDataSource.
type AirportsFunc func(ctx context.Context, done func([]aviation.Airport, error))

// LoadAirports calls f(ctx, done).
func (f AirportsFunc) LoadAirports(ctx context.Context, done func([]aviation.Airport, error)) {
	f(ctx, done)
}

// FlightsFunc adapts a function to FlightsDataSource.
type FlightsFunc func(ctx context.Context, done func([]aviation.Flight, error))

// LoadFlights calls f(ctx, done).
func (f FlightsFunc) LoadFlights(ctx context.Context, done func([]aviation.Flight, error)) {
	f(ctx, done)
}

// Airlines turns a Fetcher into an AirlinesDataSource. Each load runs the
// fetch on its own goroutine.
func Airlines(f Fetcher[aviation.Airline]) AirlinesDataSource {
	return AirlinesFunc(func(ctx context.Context, done func([]aviation.Airline, error)) {
		goFetch(ctx, f, done)
	})
}

// Airports turns a Fetcher into an AirportsDataSource.
func Airports(f Fetcher[aviation.Airport]) AirportsDataSource {
	return AirportsFunc(func(ctx context.Context, done func([]aviation.Airport, error)) {
		goFetch(ctx, f, done)
	})
}

// Flights turns a Fetcher into a FlightsDataSource.
func Flights(f Fetcher[aviation.Flight]) FlightsDataSource {
	return FlightsFunc(func(ctx context.Context, done func([]aviation.Flight, error)) {
		goFetch(ctx, f, done)
	})
}

func goFetch[T any](ctx context.Context, f Fetcher[T], done func([]T, error)) {
	go func() {
		items, err := f.Fetch(ctx)
		done(items, err)
	}()
}
