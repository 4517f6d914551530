package pgnfile

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	perr "pgnframe/internal/platform/errors"
)

// Fetcher opens a source for reading
type Fetcher interface {
	Fetch(ctx context.Context, src string) (io.ReadCloser, error)
}

// FileFetcher reads local files
type FileFetcher struct{}

// Fetch opens the file at src
func (FileFetcher) Fetch(_ context.Context, src string) (io.ReadCloser, error) {
	f, err := os.Open(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "pgn file %s not found", src)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "open %s", src)
	}
	return f, nil
}

// HTTPFetcher downloads sources over http(s)
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcherWithTimeout returns an HTTPFetcher whose client gives up after d, 0 waits forever
func NewHTTPFetcherWithTimeout(d time.Duration) *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: d}}
}

// Fetch issues a GET for src and returns the body
func (f *HTTPFetcher) Fetch(ctx context.Context, src string) (io.ReadCloser, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "bad url %s", src)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "fetch %s", src)
	}
	switch {
	case resp.StatusCode == http.StatusOK:
		return resp.Body, nil
	case resp.StatusCode == http.StatusNotFound:
		_ = resp.Body.Close()
		return nil, perr.NotFoundf("pgn source %s not found", src)
	default:
		_ = resp.Body.Close()
		return nil, perr.Unavailablef("unexpected status %d for %s", resp.StatusCode, src)
	}
}

// IsURL reports whether src should go through HTTPFetcher
func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// FetcherFor picks the fetcher matching src
func FetcherFor(src string, timeout time.Duration) Fetcher {
	if IsURL(src) {
		return NewHTTPFetcherWithTimeout(timeout)
	}
	return FileFetcher{}
}
