package services

import (
	"context"
	"io"

	"github.com/sourcegraph/conc/iter"
)

// FileOpener opens input files by the paths a source listed.
type FileOpener interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// DefaultWorkers is the parse concurrency used when a non-positive count
// is configured.
const DefaultWorkers = 4

func workerCount(n int) int {
	if n < 1 {
		return DefaultWorkers
	}
	return n
}

type parsed[T any] struct {
	value T
	err   error
}

// parseAll parses every path on at most workers goroutines, falling back to
// DefaultWorkers when workers < 1. Results keep
// the order of paths, and the error of the first failing path wins.
func parseAll[T any](ctx context.Context, src FileOpener, paths []string, workers int, parse func(io.Reader, string) (T, error)) ([]T, error) {
	mapper := iter.Mapper[string, parsed[T]]{MaxGoroutines: workerCount(workers)}
	results := mapper.Map(paths, func(path *string) parsed[T] {
		if err := ctx.Err(); err != nil {
			return parsed[T]{err: err}
		}
		f, err := src.Open(ctx, *path)
		if err != nil {
			return parsed[T]{err: err}
		}
		defer f.Close()

		value, err := parse(f, *path)
		return parsed[T]{value: value, err: err}
	})

	values := make([]T, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		values = append(values, r.value)
	}
	return values, nil
}
