package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum enabled level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format selects the encoder: console for humans, json for collectors.
	Format string `mapstructure:"format" default:"json"`
}
