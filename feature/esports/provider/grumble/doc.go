// Package grumble scrapes the season and playoffs brackets of a grumble division.
package grumble
