// Package engine aggregates every esports provider into one snapshot and answers the
// schedule, results, standings and pick/ban queries against it.
//
// A reload loads all providers in parallel, assembles a new snapshot without holding
// the read lock and swaps it in atomically. Readers only hold the lock long enough to
// grab the snapshot pointer. Polls mutate the shared match handles in place.
package engine
