package source

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/sparkify/etl/config"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GCSSource reads input files from a Google Cloud Storage bucket.
type GCSSource struct {
	client *storage.Client
	bucket string
}

// NewGCSSource constructs a GCS source from config.
func NewGCSSource(ctx context.Context, cfg config.GCSConfig) (*GCSSource, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("gcs bucket is required")
	}

	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsFile) != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &GCSSource{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// List returns the names of all .json objects below root.
func (g *GCSSource) List(ctx context.Context, root string) ([]string, error) {
	var names []string
	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{Prefix: objectPrefix(root)})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		if strings.HasSuffix(attrs.Name, jsonSuffix) {
			names = append(names, attrs.Name)
		}
	}

	sort.Strings(names)
	return names, nil
}

// Open opens a reader for an object in the configured bucket.
func (g *GCSSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return g.client.Bucket(g.bucket).Object(name).NewReader(ctx)
}

func (g *GCSSource) Close() error {
	return g.client.Close()
}
