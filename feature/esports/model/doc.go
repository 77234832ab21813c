// Package model defines the unified esports entity model shared by every provider.
//
// Teams, players, standings and brackets are plain values, immutable once a provider
// publishes them. Match is the exception: it is a shared handle whose participants and
// winner are filled in by poll cycles. Each handle remembers the load generation (Epoch)
// that created it; once its provider publishes a newer generation the handle is stale and
// ignores mutations, so a poll racing a reload can never write into a superseded snapshot.
package model
