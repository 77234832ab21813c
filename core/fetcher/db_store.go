package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Response is a persisted upstream response row.
type Response struct {
	URLHash   string    `gorm:"column:url_hash;primaryKey;size:64"`
	URL       string    `gorm:"column:url;type:text"`
	Body      []byte    `gorm:"column:body"`
	FetchedAt time.Time `gorm:"column:fetched_at"`
}

// TableName pins the table name.
func (Response) TableName() string {
	return "fetch_responses"
}

// DBStore persists responses in a relational table.
type DBStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewDBStore creates a store on db.
func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db, now: time.Now}
}

// Migrate creates or updates the responses table.
func (s *DBStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Response{}); err != nil {
		return fmt.Errorf("failed to migrate fetch_responses: %w", err)
	}
	return nil
}

// Load returns the persisted body for url.
func (s *DBStore) Load(ctx context.Context, url string) ([]byte, error) {
	var row Response
	err := s.db.WithContext(ctx).Where("url_hash = ?", Key(url)).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load response: %w", err)
	}
	return row.Body, nil
}

// Save upserts body for url.
func (s *DBStore) Save(ctx context.Context, url string, body []byte) error {
	row := Response{
		URLHash:   Key(url),
		URL:       url,
		Body:      body,
		FetchedAt: s.now().UTC(),
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save response: %w", err)
	}
	return nil
}
