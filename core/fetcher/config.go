package fetcher

import "time"

// Config holds configuration for upstream fetching.
type Config struct {
	// TimeoutSeconds bounds a single upstream request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// UserAgent is sent with every upstream request.
	UserAgent string `mapstructure:"user_agent" default:"esports-tracker/1.0"`
	// CacheTTL is how long a response is served from memory. Zero disables the memory cache.
	CacheTTL time.Duration `mapstructure:"cache_ttl" default:"10m"`
	// Persist selects the store behind Options.UseStorage (none, storage, database).
	Persist string `mapstructure:"persist" default:"none"`
	// StoragePrefix is the object name prefix used by the storage backend.
	StoragePrefix string `mapstructure:"storage_prefix" default:"fetch/"`
}

const (
	PersistNone     = "none"
	PersistStorage  = "storage"
	PersistDatabase = "database"
)

// IsValidPersist checks if the configured persistence backend is known.
func (c Config) IsValidPersist() bool {
	switch c.Persist {
	case PersistNone, PersistStorage, PersistDatabase:
		return true
	default:
		return false
	}
}

// Timeout returns the per-request timeout, defaulting to 30 seconds.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
