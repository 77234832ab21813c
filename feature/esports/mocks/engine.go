package mocks

import (
	"context"
	"time"

	"esports-tracker/feature/esports/engine"
	"esports-tracker/feature/esports/stats"

	"github.com/stretchr/testify/mock"
)

// Engine is a mock implementation of esports.Engine
type Engine struct {
	mock.Mock
}

func (m *Engine) IsReady() bool {
	return m.Called().Bool(0)
}

func (m *Engine) Generation() uint64 {
	return m.Called().Get(0).(uint64)
}

func (m *Engine) LoadedAt() time.Time {
	return m.Called().Get(0).(time.Time)
}

func (m *Engine) ReloadData(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *Engine) GetSchedule(qualifier string, includePlayoffs bool, limit int) ([]string, string) {
	args := m.Called(qualifier, includePlayoffs, limit)
	return args.Get(0).([]string), args.String(1)
}

func (m *Engine) GetResults(qualifier string, limit int) ([]string, string) {
	args := m.Called(qualifier, limit)
	return args.Get(0).([]string), args.String(1)
}

func (m *Engine) GetStandings(league, bracket string) ([]string, error) {
	args := m.Called(league, bracket)
	lines, _ := args.Get(0).([]string)
	return lines, args.Error(1)
}

func (m *Engine) GetChampPickBanRate(region, champ string) (string, engine.ChampRate, error) {
	args := m.Called(region, champ)
	rate, _ := args.Get(1).(engine.ChampRate)
	return args.String(0), rate, args.Error(2)
}

func (m *Engine) GetPlayerChampStats(query string) (string, engine.PlayerChampStats, error) {
	args := m.Called(query)
	player, _ := args.Get(1).(engine.PlayerChampStats)
	return args.String(0), player, args.Error(2)
}

func (m *Engine) GetTopPickBanChamps(region string, key stats.SortKey, descending bool) (int, []engine.ChampCount) {
	args := m.Called(region, key, descending)
	champs, _ := args.Get(1).([]engine.ChampCount)
	return args.Int(0), champs
}

func (m *Engine) GetUniqueChampCount(region string) (int, int) {
	args := m.Called(region)
	return args.Int(0), args.Int(1)
}
