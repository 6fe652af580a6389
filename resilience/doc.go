// Package resilience provides retry with exponential backoff for data source
// fetches.
//
//	airlines, err := resilience.Retry(ctx, resilience.DefaultRetryConfig(), func(ctx context.Context) ([]aviation.Airline, error) {
//	    return fetcher.Fetch(ctx)
//	})
package resilience
