// Package server holds the HTTP server configuration.
//
// While the start command owns the Fiber app lifecycle, this package defines the
// configuration structure it reads and the helpers that turn settings into values the
// app can use directly.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key enforced by the auth middleware
// (an empty key disables the check), and the graceful shutdown window.
//
// # Helpers
//
//   - Address: the listen address for the configured port.
//   - ShutdownTimeout: how long in-flight requests and scheduled jobs get on shutdown,
//     defaulting to 10 seconds.
//
// # Usage
//
// This package is embedded by core/config and read by the start command:
//
//	app.Listen(cfg.Server.Address())
//	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
package server
