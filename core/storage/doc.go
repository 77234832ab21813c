// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the operations the
// fetcher's object-backed response store needs. This abstraction supports both AWS S3 and
// self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - MakeBucket: Creates the bucket on first use.
//   - PutObject: Uploads a response body (with size and content type).
//   - GetObject: Retrieves a response body as a stream.
//
// IsNotFound classifies the service's missing key and missing bucket errors so callers
// can tell an absent object from an outage.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "esports")
package storage
