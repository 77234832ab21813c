package fetcher

import (
	"context"
	"fmt"

	"esports-tracker/core/storage"

	"gorm.io/gorm"
)

// Store persists response bodies across process restarts.
type Store interface {
	// Load returns the persisted body for url, or ErrNotFound.
	Load(ctx context.Context, url string) ([]byte, error)
	// Save persists body for url, replacing any previous body.
	Save(ctx context.Context, url string, body []byte) error
}

// NewStore builds the store selected by cfg.Persist. It returns a nil Store for "none".
// client and db are only required by their respective backends.
func NewStore(ctx context.Context, cfg Config, client storage.Client, bucket string, db *gorm.DB) (Store, error) {
	switch cfg.Persist {
	case PersistNone, "":
		return nil, nil
	case PersistStorage:
		if client == nil {
			return nil, fmt.Errorf("storage persistence requires a storage client")
		}
		s := NewObjectStore(client, bucket, cfg.StoragePrefix)
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s, nil
	case PersistDatabase:
		if db == nil {
			return nil, fmt.Errorf("database persistence requires a database connection")
		}
		s := NewDBStore(db)
		if err := s.Migrate(ctx); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown persistence backend %q", cfg.Persist)
	}
}
