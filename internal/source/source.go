package source

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sparkify/etl/config"
)

const jsonSuffix = ".json"

// Source lists and opens the JSON input files of one backend.
type Source interface {
	// List returns every .json file below root, sorted. It has no side effects.
	List(ctx context.Context, root string) ([]string, error)
	// Open opens a path returned by List.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Close() error
}

// New constructs the Source selected by cfg.Source.Backend.
func New(ctx context.Context, cfg config.Config) (Source, error) {
	switch cfg.Source.Backend {
	case "", "local":
		return NewLocal(), nil
	case "minio":
		src, err := NewMinioSource(cfg.Source.Minio)
		if err != nil {
			return nil, err
		}
		return src, nil
	case "gcs":
		src, err := NewGCSSource(ctx, cfg.Source.GCS)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unknown source backend %q", cfg.Source.Backend)
	}
}

// objectPrefix turns a root path into a bucket listing prefix.
func objectPrefix(root string) string {
	prefix := strings.TrimLeft(strings.TrimSpace(root), "/")
	if prefix == "" || prefix == "." {
		return ""
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}
