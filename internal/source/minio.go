package source

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sparkify/etl/config"
)

// MinioSource reads input files from an S3-compatible bucket.
type MinioSource struct {
	client *minio.Client
	bucket string
}

// NewMinioSource constructs a MinIO source from config.
func NewMinioSource(cfg config.MinioConfig) (*MinioSource, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.New("minio endpoint is required")
	}
	if strings.TrimSpace(cfg.AccessKey) == "" || strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, errors.New("minio access key and secret key are required")
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("minio bucket is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	return &MinioSource{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// List returns the keys of all .json objects below root.
func (m *MinioSource) List(ctx context.Context, root string) ([]string, error) {
	// Cancelling stops the listing goroutine when we return early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var keys []string
	objects := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    objectPrefix(root),
		Recursive: true,
	})
	for object := range objects {
		if object.Err != nil {
			return nil, object.Err
		}
		if strings.HasSuffix(object.Key, jsonSuffix) {
			keys = append(keys, object.Key)
		}
	}

	sort.Strings(keys)
	return keys, nil
}

// Open opens a reader for an object in the configured bucket.
func (m *MinioSource) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
}

func (m *MinioSource) Close() error {
	return nil
}
