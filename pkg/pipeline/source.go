package pipeline

import (
	"context"
	"os"

	errs "github.com/matzehuels/stitchrow/pkg/errors"
	"github.com/matzehuels/stitchrow/pkg/remote"
)

// ReadSource reads a pattern document from disk.
func ReadSource(path string) ([]byte, error) {
	if path == "" {
		return nil, errs.New(errs.ErrCodeInvalidPath, "path cannot be empty")
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errs.New(errs.ErrCodeFileNotFound, "file not found: %s", path)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "read %s", path)
	}
	return data, nil
}

// FetchSource reads a pattern document from a file path or, for http and
// https URLs, downloads it with client. A nil client uses remote defaults.
func FetchSource(ctx context.Context, loc string, client *remote.Client) ([]byte, error) {
	if !remote.IsURL(loc) {
		return ReadSource(loc)
	}
	if client == nil {
		client = remote.NewClient(nil)
	}
	return client.Fetch(ctx, loc)
}

// SourceName returns the name used for loader detection: the file path
// itself, or the last element of a URL's path.
func SourceName(loc string) string {
	if remote.IsURL(loc) {
		return remote.Filename(loc)
	}
	return loc
}
