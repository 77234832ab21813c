// Package config provides configuration management for the esports tracker.
//
// It loads an optional .env file with godotenv, then lets Viper resolve every key from the
// environment, falling back to the `default` struct tags of each partial configuration.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, shutdown window
//   - Log: logging level and format
//   - Storage: S3/MinIO credentials and bucket for persisted upstream responses
//   - Database: MySQL or SQLite connection for the database response store
//   - Fetcher: timeouts, cache TTL and persistence backend
//   - Esports: league roster, statistics toggle, reload/poll schedules
//   - Announce: where changed match results are published
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Esports.PollSchedule)
package config
