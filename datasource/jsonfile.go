package datasource

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kbukum/airlinerank/errors"
)

// JSONFile returns a Fetcher that reads a JSON array of T from path on every
// fetch. A missing file is reported as NOT_FOUND and a malformed one as
// INVALID_INPUT, so neither is retried.
func JSONFile[T any](name, path string) Fetcher[T] {
	return NewFetcher(name, func(ctx context.Context) ([]T, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				return nil, errors.NotFound(name+" data", path).WithCause(err)
			}
			return nil, errors.SourceFetchFailed(name, err)
		}
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				fmt.Sprintf("The %s data could not be read.", name)).
				WithCause(err).
				WithDetail("path", path)
		}
		if items == nil {
			items = []T{}
		}
		return items, nil
	})
}
