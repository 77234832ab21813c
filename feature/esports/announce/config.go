package announce

// Backend names a Sink implementation.
const (
	BackendLog   = "log"
	BackendRedis = "redis"
)

// Config holds configuration for match announcements.
type Config struct {
	// Backend selects where changed matches are announced: log or redis.
	Backend string `mapstructure:"backend" default:"log"`
	// RedisAddr is the host:port of the Redis server.
	RedisAddr string `mapstructure:"redis_addr" default:"localhost:6379"`
	// RedisPassword authenticates against Redis.
	RedisPassword string `mapstructure:"redis_password" default:""`
	// RedisDB selects the Redis database.
	RedisDB int `mapstructure:"redis_db" default:"0"`
	// Stream is the Redis stream key announcements are appended to.
	Stream string `mapstructure:"stream" default:"esports:matches"`
	// MaxLen approximately caps the stream length; 0 disables trimming.
	MaxLen int64 `mapstructure:"max_len" default:"1000"`
}

// IsValidBackend reports whether Backend names a known sink.
func (c *Config) IsValidBackend() bool {
	return c.Backend == BackendLog || c.Backend == BackendRedis
}
