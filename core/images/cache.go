package images

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Fetcher retrieves raw image bytes from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches images over plain HTTP GET.
type HTTPFetcher struct {
	http *http.Client
}

// NewHTTPFetcher creates a fetcher with the given timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPFetcher{http: &http.Client{Timeout: timeout}}
}

// Fetch downloads the image bytes at url.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Cache base64-encodes fetched images and remembers them by source URL so
// the same thumbnail is never encoded twice within one dispatch pass.
// It has no eviction; construct one per pass and let it go.
//
// A failed fetch falls back to the configured default image. The cache is
// an explicit dependency threaded through calls, never a process global.
type Cache struct {
	fetcher    Fetcher
	defaultURL string
	entries    map[string]string
	logger     *zap.Logger
}

// NewCache creates an empty cache around the fetcher.
func NewCache(fetcher Fetcher, defaultURL string, logger *zap.Logger) *Cache {
	return &Cache{
		fetcher:    fetcher,
		defaultURL: defaultURL,
		entries:    make(map[string]string),
		logger:     logger,
	}
}

// Base64 returns the base64 payload for url, fetching and encoding it on
// first use. When the fetch fails the default image is substituted; the
// substitution is cached under the original url so the broken source is
// not retried within the pass.
func (c *Cache) Base64(ctx context.Context, url string) (string, error) {
	if encoded, ok := c.entries[url]; ok {
		return encoded, nil
	}

	encoded, err := c.fetchEncoded(ctx, url)
	if err != nil {
		c.logger.Warn("image fetch failed, using default image",
			zap.String("url", url), zap.Error(err))
		if c.defaultURL == "" || c.defaultURL == url {
			return "", err
		}
		encoded, err = c.Base64(ctx, c.defaultURL)
		if err != nil {
			return "", err
		}
	}

	c.entries[url] = encoded
	return encoded, nil
}

func (c *Cache) fetchEncoded(ctx context.Context, url string) (string, error) {
	raw, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
