package announce

import (
	"context"
	"fmt"

	"esports-tracker/feature/esports/model"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Sink receives matches whose teams or result changed.
type Sink interface {
	Announce(ctx context.Context, m *model.Match) error
}

// New creates the sink selected by cfg. The returned closer releases its resources.
func New(cfg Config, logger *zap.Logger) (Sink, func() error, error) {
	switch cfg.Backend {
	case BackendLog, "":
		return NewLogSink(logger), func() error { return nil }, nil
	case BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return NewRedisSink(client, cfg.Stream, cfg.MaxLen), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported announce backend: %s", cfg.Backend)
	}
}

// Publish announces every match and marks it announced. Failures are logged and leave
// the match unmarked. It returns the number of matches announced.
func Publish(ctx context.Context, sink Sink, matches []*model.Match, logger *zap.Logger) int {
	sent := 0
	for _, m := range matches {
		if err := sink.Announce(ctx, m); err != nil {
			logger.Warn("Failed to announce match", zap.String("match", m.ID()), zap.Error(err))
			continue
		}
		m.MarkAnnounced()
		sent++
	}
	return sent
}
