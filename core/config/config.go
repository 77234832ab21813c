package config

import (
	"reflect"
	"strings"
	"time"

	"esports-tracker/core/database"
	"esports-tracker/core/fetcher"
	"esports-tracker/core/logger"
	"esports-tracker/core/server"
	"esports-tracker/core/storage"
	"esports-tracker/feature/esports"
	"esports-tracker/feature/esports/announce"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Storage holds configuration for the object storage used to persist upstream responses.
	Storage storage.Config `mapstructure:"storage"`
	// Database holds configuration for the optional database response store.
	Database database.Config `mapstructure:"database"`
	// Fetcher holds configuration for upstream HTTP fetching and caching.
	Fetcher fetcher.Config `mapstructure:"fetcher"`
	// Esports holds the league roster and the reload/poll cadence.
	Esports esports.Config `mapstructure:"esports"`
	// Announce holds configuration for match result announcements.
	Announce announce.Config `mapstructure:"announce"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. ESPORTS_POLL_SCHEDULE -> esports.poll_schedule)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// bindValues walks the struct and registers every 'mapstructure' key in Viper with the
// value of its 'default' tag. Nested structs are flattened into dotted keys.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct && field.Type != durationType {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv.
		// Slices and durations are decoded from the string form by Viper's hooks.
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
