package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"esports-tracker/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectStore persists responses as objects in a bucket.
type ObjectStore struct {
	client storage.Client
	bucket string
	prefix string
}

// NewObjectStore creates a store writing under prefix in bucket.
func NewObjectStore(client storage.Client, bucket, prefix string) *ObjectStore {
	return &ObjectStore{client: client, bucket: bucket, prefix: prefix}
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *ObjectStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *ObjectStore) objectName(url string) string {
	return s.prefix + Key(url) + ".json"
}

// Load returns the persisted body for url.
func (s *ObjectStore) Load(ctx context.Context, url string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.objectName(url), minio.GetObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer obj.Close()

	// Minio reports a missing key on first read, not on GetObject.
	body, err := io.ReadAll(obj)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	return body, nil
}

// Save uploads body for url.
func (s *ObjectStore) Save(ctx context.Context, url string, body []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.objectName(url), bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}
	return nil
}
