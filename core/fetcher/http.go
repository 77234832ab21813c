package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// HTTPFetcher fetches JSON over HTTP with an in-memory TTL cache and an optional
// persistent store for responses requested with UseStorage.
type HTTPFetcher struct {
	client    *fasthttp.Client
	cache     *memoryCache
	store     Store
	sf        singleflight.Group
	userAgent string
	timeout   time.Duration
	logger    *zap.Logger
}

// NewHTTPFetcher creates a fetcher. store may be nil, in which case UseStorage only
// affects the memory cache.
func NewHTTPFetcher(cfg Config, store Store, logger *zap.Logger) *HTTPFetcher {
	timeout := cfg.Timeout()
	return &HTTPFetcher{
		client: &fasthttp.Client{
			MaxConnsPerHost:     32,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
		cache:     newMemoryCache(cfg.CacheTTL),
		store:     store,
		userAgent: cfg.UserAgent,
		timeout:   timeout,
		logger:    logger,
	}
}

// FetchJSON returns the JSON body served at url.
func (f *HTTPFetcher) FetchJSON(ctx context.Context, url string, opts Options) ([]byte, error) {
	if !opts.ForceLookup {
		if body, ok := f.cache.get(url); ok {
			return body, nil
		}
		if opts.UseStorage && f.store != nil {
			body, err := f.store.Load(ctx, url)
			if err == nil {
				f.cache.set(url, body)
				return body, nil
			}
			if !errors.Is(err, ErrNotFound) {
				f.logger.Warn("Failed to read persisted response", zap.String("url", url), zap.Error(err))
			}
		}
	}

	// Concurrent callers of the same url share one upstream request.
	v, err, _ := f.sf.Do(url, func() (interface{}, error) {
		return f.get(ctx, url)
	})
	if err != nil {
		return nil, err
	}
	body := v.([]byte)

	f.cache.set(url, body)
	if opts.UseStorage && f.store != nil {
		if err := f.store.Save(ctx, url, body); err != nil {
			f.logger.Warn("Failed to persist response", zap.String("url", url), zap.Error(err))
		}
	}
	return body, nil
}

// FlushCache drops every memoized response. Persisted responses are kept.
func (f *HTTPFetcher) FlushCache() {
	f.cache.flush()
}

func (f *HTTPFetcher) get(ctx context.Context, url string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if f.userAgent != "" {
		req.Header.SetUserAgent(f.userAgent)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(f.timeout)
	}
	if err := f.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	switch status := resp.StatusCode(); {
	case status == fasthttp.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", url, ErrNotFound)
	case status != fasthttp.StatusOK:
		return nil, fmt.Errorf("unexpected status %d from %s", status, url)
	}

	// The response buffer is recycled on release.
	body := append([]byte(nil), resp.Body()...)
	if !json.Valid(body) {
		return nil, fmt.Errorf("invalid JSON from %s", url)
	}
	return body, nil
}
