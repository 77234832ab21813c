package announce

import (
	"context"
	"fmt"

	"esports-tracker/feature/esports/model"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// StreamAdder is the part of a Redis client the sink uses.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisSink appends announcements to a Redis stream.
type RedisSink struct {
	client StreamAdder
	stream string
	maxLen int64
}

// NewRedisSink creates a sink writing to stream, trimmed to about maxLen entries.
func NewRedisSink(client StreamAdder, stream string, maxLen int64) *RedisSink {
	return &RedisSink{client: client, stream: stream, maxLen: maxLen}
}

// Announce appends m to the stream.
func (s *RedisSink) Announce(ctx context.Context, m *model.Match) error {
	data := m.Data()
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal match %s: %w", data.ID, err)
	}
	args := &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]interface{}{
			"match_id":   data.ID,
			"bracket_id": data.BracketID,
			"blue":       data.Blue,
			"red":        data.Red,
			"winner":     data.Winner,
			"data":       string(payload),
		},
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}
	if err := s.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("failed to publish match %s: %w", data.ID, err)
	}
	return nil
}
