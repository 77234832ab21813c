// Package esports wires the providers and the aggregation engine from configuration
// and serves the read queries over HTTP.
package esports
