// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation for every route registered after it.
//   - rayid: generates (or propagates) a request id, stores it in the context for
//     logger.WithRayID and echoes it in the X-Ray-ID response header.
package middleware
