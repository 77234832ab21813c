// Package announce publishes changed matches to a log or a Redis stream.
package announce
