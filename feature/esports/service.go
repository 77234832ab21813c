package esports

import (
	"context"
	"time"

	"esports-tracker/feature/esports/engine"
	"esports-tracker/feature/esports/stats"
)

// Engine is the query surface the HTTP feature serves. *engine.Engine implements it.
type Engine interface {
	IsReady() bool
	Generation() uint64
	LoadedAt() time.Time
	ReloadData(ctx context.Context) error
	GetSchedule(qualifier string, includePlayoffs bool, limit int) ([]string, string)
	GetResults(qualifier string, limit int) ([]string, string)
	GetStandings(league, bracket string) ([]string, error)
	GetChampPickBanRate(region, champ string) (string, engine.ChampRate, error)
	GetPlayerChampStats(query string) (string, engine.PlayerChampStats, error)
	GetTopPickBanChamps(region string, key stats.SortKey, descending bool) (int, []engine.ChampCount)
	GetUniqueChampCount(region string) (int, int)
}

var _ Engine = (*engine.Engine)(nil)
