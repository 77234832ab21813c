// Package stats scrapes per game participant data into champion and player tallies.
package stats
