// Package database handles database connections.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly configure
// MySQL or SQLite connections based on the application's configuration. The connection is
// optional: it is only opened when the fetcher persists responses in the database.
//
// # Connect
//
// The Connect function selects the dialector from Config.Driver, applies pool settings
// and pings the database before returning, so misconfiguration surfaces at startup.
//
// # Drivers
//
//   - mysql: production driver. Credentials are URL encoded into the DSN and the
//     configured timeout applies to connection setup, reads and writes.
//   - sqlite: local runs and tests. ":memory:" databases are pinned to a single
//     connection so every query sees the same database.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return fmt.Errorf("failed to connect to database: %w", err)
//	}
//
//	store := fetcher.NewDBStore(db)
package database
