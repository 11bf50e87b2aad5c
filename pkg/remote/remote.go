// Package remote fetches chart documents over HTTP.
//
// Charts are often shared as links to a bitmap or SVG. The [Client] downloads
// such a document with a timeout, a size limit and retries on network errors
// and 5xx responses:
//
//	c := remote.NewClient(nil)
//	data, err := c.Fetch(ctx, "https://example.com/charts/cable.svg")
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/matzehuels/stitchrow/pkg/buildinfo"
	"github.com/matzehuels/stitchrow/pkg/cache"
	errs "github.com/matzehuels/stitchrow/pkg/errors"
)

const (
	httpTimeout = 30 * time.Second

	// DefaultMaxBytes caps the size of a downloaded document.
	DefaultMaxBytes = 10 << 20
)

// ErrNetwork is returned for timeouts, connection errors and 5xx responses.
var ErrNetwork = errors.New("network error")

// Client downloads chart documents.
type Client struct {
	http     *http.Client
	headers  map[string]string
	maxBytes int64
}

// NewClient creates a Client. Headers are sent with every request; pass nil
// for none.
func NewClient(headers map[string]string) *Client {
	return &Client{
		http:     &http.Client{Timeout: httpTimeout},
		headers:  headers,
		maxBytes: DefaultMaxBytes,
	}
}

// IsURL reports whether loc is an http or https URL rather than a file path.
func IsURL(loc string) bool {
	u, err := url.Parse(loc)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Filename returns the last path element of a URL, used for loader
// detection. It is empty when the URL has no path.
func Filename(loc string) string {
	u, err := url.Parse(loc)
	if err != nil {
		return ""
	}
	name := path.Base(u.Path)
	if name == "/" || name == "." {
		return ""
	}
	return name
}

// Fetch downloads the document at loc, retrying transient failures.
func (c *Client) Fetch(ctx context.Context, loc string) ([]byte, error) {
	var data []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		data, err = c.get(ctx, loc)
		return err
	})
	if err != nil {
		return nil, unwrapRetryable(err)
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, loc string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "invalid url %q", loc)
	}
	req.Header.Set("User-Agent", "stitchrow/"+buildinfo.Version)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, cache.Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	defer resp.Body.Close()

	if err := checkStatus(loc, resp.StatusCode); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, cache.Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	if int64(len(data)) > c.maxBytes {
		return nil, errs.New(errs.ErrCodeInvalidInput, "%s is larger than %d bytes", loc, c.maxBytes)
	}
	return data, nil
}

func checkStatus(loc string, code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errs.New(errs.ErrCodeFileNotFound, "not found: %s", loc)
	case code >= 500:
		return cache.Retryable(fmt.Errorf("%w: status %d", ErrNetwork, code))
	default:
		return errs.New(errs.ErrCodeInvalidInput, "fetch %s: status %d", loc, code)
	}
}

// unwrapRetryable turns a final network failure into a coded error.
func unwrapRetryable(err error) error {
	var re *cache.RetryableError
	if errors.As(err, &re) {
		return errs.Wrap(errs.ErrCodeInternal, re.Err, "fetch failed")
	}
	return err
}
