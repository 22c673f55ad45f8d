package source

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Local reads input files from the local file system.
type Local struct{}

func NewLocal() *Local {
	return &Local{}
}

// List walks root recursively and returns the absolute paths of all
// .json files.
func (l *Local) List(ctx context.Context, root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), jsonSuffix) {
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return errors.Wrapf(err, "failed to get absolute path for %s", path)
		}
		paths = append(paths, abs)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "error walking directory %s", root)
	}

	sort.Strings(paths)
	return paths, nil
}

func (l *Local) Open(_ context.Context, path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (l *Local) Close() error {
	return nil
}
