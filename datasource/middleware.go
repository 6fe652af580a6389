package datasource

import (
	"context"
	"time"

	"github.com/kbukum/airlinerank/logger"
	"github.com/kbukum/airlinerank/resilience"
	"github.com/kbukum/airlinerank/validation"
)

// Middleware transforms a Fetcher by wrapping it.
type Middleware[T any] func(Fetcher[T]) Fetcher[T]

// Chain composes middlewares into one. The first middleware is outermost.
//
// Chain(a, b, c)(f) is equivalent to a(b(c(f))).
func Chain[T any](middlewares ...Middleware[T]) Middleware[T] {
	return func(inner Fetcher[T]) Fetcher[T] {
		for i := len(middlewares) - 1; i >= 0; i-- {
			inner = middlewares[i](inner)
		}
		return inner
	}
}

// WithLogging logs each fetch with its duration and record count.
func WithLogging[T any](log *logger.Logger) Middleware[T] {
	return func(inner Fetcher[T]) Fetcher[T] {
		return &loggingFetcher[T]{inner: inner, log: log}
	}
}

type loggingFetcher[T any] struct {
	inner Fetcher[T]
	log   *logger.Logger
}

func (l *loggingFetcher[T]) Name() string { return l.inner.Name() }

func (l *loggingFetcher[T]) Fetch(ctx context.Context) ([]T, error) {
	start := time.Now()
	items, err := l.inner.Fetch(ctx)

	fields := logger.Timed(start, logger.FieldSource, l.inner.Name())
	if err != nil {
		l.log.WithContext(ctx).Error("fetch failed", logger.MergeWithError(fields, err))
		return items, err
	}
	fields[logger.FieldCount] = len(items)
	l.log.WithContext(ctx).Debug("fetch ok", fields)
	return items, nil
}

// WithRetry retries failed fetches according to cfg. Each retry is logged
// unless cfg.OnRetry is set.
func WithRetry[T any](cfg resilience.RetryConfig) Middleware[T] {
	return func(inner Fetcher[T]) Fetcher[T] {
		return NewFetcher(inner.Name(), func(ctx context.Context) ([]T, error) {
			rc := cfg
			if rc.OnRetry == nil {
				rc.OnRetry = func(attempt int, err error, wait time.Duration) {
					logger.Get(logger.ComponentDatasource).WithContext(ctx).Warn("Retrying fetch", logger.MergeWithError(logger.Fields(
						logger.FieldSource, inner.Name(),
						"attempt", attempt,
						"backoff_ms", wait.Milliseconds(),
					), err))
				}
			}
			return resilience.Retry(ctx, rc, inner.Fetch)
		})
	}
}

// WithValidation drops records that fail struct-tag validation and logs a
// warning for each one. Fetch errors pass through untouched.
func WithValidation[T any]() Middleware[T] {
	return func(inner Fetcher[T]) Fetcher[T] {
		return NewFetcher(inner.Name(), func(ctx context.Context) ([]T, error) {
			items, err := inner.Fetch(ctx)
			if err != nil {
				return items, err
			}
			valid := make([]T, 0, len(items))
			for i, item := range items {
				if verr := validation.Validate(item); verr != nil {
					logger.Get(logger.ComponentDatasource).Warn("Dropping invalid record", logger.Fields(
						logger.FieldSource, inner.Name(),
						"index", i,
						"fields", validation.Fields(verr),
					))
					continue
				}
				valid = append(valid, item)
			}
			return valid, nil
		})
	}
}
