package fetcher_test

import (
	"context"
	"errors"
	"testing"

	"esports-tracker/core/database"
	"esports-tracker/core/fetcher"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestDBStore_MySQL(t *testing.T) {
	ctx := context.Background()
	url := "http://api.lolesports.com/api/v1/leagues?slug=lec"

	t.Run("LoadMissing", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery("SELECT \\* FROM `fetch_responses` WHERE url_hash = \\?").
			WillReturnRows(sqlmock.NewRows([]string{"url_hash", "url", "body", "fetched_at"}))

		_, err := fetcher.NewDBStore(db).Load(ctx, url)
		assert.True(t, errors.Is(err, fetcher.ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("LoadQueryError", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery("SELECT \\* FROM `fetch_responses`").WillReturnError(errors.New("connection reset"))

		_, err := fetcher.NewDBStore(db).Load(ctx, url)
		assert.Error(t, err)
		assert.False(t, errors.Is(err, fetcher.ErrNotFound))
	})

	t.Run("SaveUpserts", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `fetch_responses` .* ON DUPLICATE KEY UPDATE").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		assert.NoError(t, fetcher.NewDBStore(db).Save(ctx, url, []byte(`{}`)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDBStore_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	s := fetcher.NewDBStore(db)
	require.NoError(t, s.Migrate(ctx))

	url := "http://acs.leagueoflegends.com/v1/stats/game/TRLH1/1001?gameHash=abc"
	_, err = s.Load(ctx, url)
	assert.True(t, errors.Is(err, fetcher.ErrNotFound))

	require.NoError(t, s.Save(ctx, url, []byte(`{"teams":[]}`)))
	require.NoError(t, s.Save(ctx, url, []byte(`{"teams":[1]}`)))

	body, err := s.Load(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, `{"teams":[1]}`, string(body))
}
