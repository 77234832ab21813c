// Package champion maps champion ids to names using Data Dragon metadata.
package champion
