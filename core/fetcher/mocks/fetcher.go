package mocks

import (
	"context"

	"esports-tracker/core/fetcher"

	"github.com/stretchr/testify/mock"
)

// Fetcher is a mock implementation of fetcher.Fetcher
type Fetcher struct {
	mock.Mock
}

func (m *Fetcher) FetchJSON(ctx context.Context, url string, opts fetcher.Options) ([]byte, error) {
	args := m.Called(ctx, url, opts)
	if body, ok := args.Get(0).([]byte); ok {
		return body, args.Error(1)
	}
	if body, ok := args.Get(0).(string); ok {
		return []byte(body), args.Error(1)
	}
	return nil, args.Error(1)
}

// FlushCache records the call so tests can assert on it.
func (m *Fetcher) FlushCache() {
	m.Called()
}
