// Package fetcher retrieves upstream JSON documents for the esports providers.
//
// # Caching
//
// HTTPFetcher keeps recent bodies in memory for the configured TTL and collapses concurrent
// requests for the same url with singleflight. Options.ForceLookup skips every cache; it is
// used by the poll cycle, which must observe fresh results.
//
// # Persistence
//
// Responses requested with Options.UseStorage (per-game statistics, match details, team
// rosters) rarely change once published, so they are also written to a Store and served from
// it on later runs. Two backends exist:
//   - ObjectStore: one JSON object per url in a MinIO/S3 bucket.
//   - DBStore: a fetch_responses table in MySQL or SQLite.
//
// # Errors
//
// A 404 maps to ErrNotFound. Any other non-200 status, transport failure or invalid JSON body
// is returned as a wrapped error; callers treat every failure as "no data for this request".
package fetcher
