package fetcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrNotFound is returned when the upstream answers 404 or a persisted response is absent.
var ErrNotFound = errors.New("fetcher: not found")

// Options controls how a single fetch is served.
type Options struct {
	// ForceLookup bypasses the in-memory cache and the persistent store.
	ForceLookup bool
	// UseStorage persists the response and lets later calls be served from the persistent store.
	UseStorage bool
}

// Fetcher retrieves JSON documents from upstream sources.
type Fetcher interface {
	// FetchJSON returns the raw JSON body served at url.
	FetchJSON(ctx context.Context, url string, opts Options) ([]byte, error)
}

// Flusher is implemented by fetchers that keep an in-memory cache.
type Flusher interface {
	FlushCache()
}

// Key derives the storage key of a url.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}
