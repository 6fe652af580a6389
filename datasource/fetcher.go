package datasource

import "context"

// Fetcher synchronously loads a list of records.
type Fetcher[T any] interface {
	// Name identifies the fetcher in logs and error messages.
	Name() string
	// Fetch returns every record, or an error.
	Fetch(ctx context.Context) ([]T, error)
}

// FetcherFunc is the signature of a fetch function.
type FetcherFunc[T any] func(ctx context.Context) ([]T, error)

// NewFetcher wraps fn as a Fetcher with the given name.
func NewFetcher[T any](name string, fn FetcherFunc[T]) Fetcher[T] {
	return &funcFetcher[T]{name: name, fn: fn}
}

type funcFetcher[T any] struct {
	name string
	fn   FetcherFunc[T]
}

func (f *funcFetcher[T]) Name() string { return f.name }

func (f *funcFetcher[T]) Fetch(ctx context.Context) ([]T, error) { return f.fn(ctx) }

// Static returns a Fetcher that always yields a copy of items.
func Static[T any](name string, items []T) Fetcher[T] {
	return NewFetcher(name, func(context.Context) ([]T, error) {
		return append([]T(nil), items...), nil
	})
}
