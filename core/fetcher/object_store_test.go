package fetcher_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"esports-tracker/core/fetcher"
	"esports-tracker/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestObjectStore(t *testing.T) {
	ctx := context.Background()
	url := "http://api.lolesports.com/api/v1/leagues?slug=lck"
	objectName := "fetch/" + fetcher.Key(url) + ".json"

	t.Run("EnsureBucketCreatesMissing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "esports").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "esports", mock.Anything).Return(nil)

		s := fetcher.NewObjectStore(client, "esports", "fetch/")
		assert.NoError(t, s.EnsureBucket(ctx))
		client.AssertExpectations(t)
	})

	t.Run("EnsureBucketExisting", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "esports").Return(true, nil)

		s := fetcher.NewObjectStore(client, "esports", "fetch/")
		assert.NoError(t, s.EnsureBucket(ctx))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Load", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "esports", objectName, mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte(`{"leagues":[]}`))), nil)

		s := fetcher.NewObjectStore(client, "esports", "fetch/")
		body, err := s.Load(ctx, url)
		assert.NoError(t, err)
		assert.Equal(t, `{"leagues":[]}`, string(body))
	})

	t.Run("LoadMissing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "esports", objectName, mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

		s := fetcher.NewObjectStore(client, "esports", "fetch/")
		_, err := s.Load(ctx, url)
		assert.True(t, errors.Is(err, fetcher.ErrNotFound))
	})

	t.Run("Save", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("PutObject", mock.Anything, "esports", objectName, mock.Anything, int64(2), mock.Anything).
			Return(minio.UploadInfo{}, nil)

		s := fetcher.NewObjectStore(client, "esports", "fetch/")
		assert.NoError(t, s.Save(ctx, url, []byte(`{}`)))
		client.AssertExpectations(t)
	})
}
