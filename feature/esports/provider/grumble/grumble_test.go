package grumble

import (
	"context"
	"errors"
	"testing"
	"time"

	"esports-tracker/core/fetcher"
	"esports-tracker/core/fetcher/mocks"
	"esports-tracker/feature/esports/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testBase = "http://grumble.test/rest"

const seasonJSON = `{"schedule": [
  {"matches": [
    {"team1": {"ref": {"id": "A", "displayName": "Alpha"}, "outcome": "VICTORY"},
     "team2": {"ref": {"id": "B", "displayName": "Bravo"}, "outcome": "DEFEAT"},
     "timestampSec": 1530000000,
     "games": [{"ref": {"gameId": 123, "tournamentCode": "NA0-code"}}, {}]},
    {"team1": {"ref": {"id": "C", "displayName": "Charlie"}, "outcome": "TIE"},
     "team2": {"ref": {"id": "D", "displayName": "Delta"}, "outcome": "TIE"},
     "timestampSec": "1530003600",
     "games": []}
  ]},
  {"matches": [
    {"team1": {"ref": {"id": "A", "displayName": "Alpha"}, "outcome": null},
     "team2": {"ref": {"id": "C", "displayName": "Charlie"}},
     "games": []},
    {"team1": {}, "team2": {"ref": {"id": "B", "displayName": "Bravo"}}, "timestampSec": 1600000000, "games": []}
  ]}
]}`

const polledSeasonJSON = `{"schedule": [
  {"matches": [
    {"team1": {"ref": {"id": "A"}, "outcome": "DEFEAT"}, "team2": {"ref": {"id": "B"}, "outcome": "VICTORY"}},
    {"team1": {"ref": {"id": "C"}, "outcome": "TIE"}, "team2": {"ref": {"id": "D"}, "outcome": "TIE"}}
  ]},
  {"matches": [
    {"team1": {"ref": {"id": "A"}, "outcome": "VICTORY"}, "team2": {"ref": {"id": "C"}, "outcome": "DEFEAT"}},
    {"team1": {}, "team2": {"ref": {"id": "B"}}}
  ]}
]}`

var (
	seasonURL   = testBase + "/bracket/grumble-2018/D1/season"
	playoffsURL = testBase + "/bracket/grumble-2018/D1/playoffs"
	teamAURL    = testBase + "/team/grumble-2018/D1/A"
	forced      = fetcher.Options{ForceLookup: true}
)

var now = time.Date(2018, time.July, 1, 0, 0, 0, 0, time.UTC)

func newTestProvider(f fetcher.Fetcher) *Provider {
	p := New(Config{Division: "D1", StatsEnabled: true, BaseURL: testBase}, f, zap.NewNop())
	p.now = func() time.Time { return now }
	return p
}

func fixtureFetcher() *mocks.Fetcher {
	f := new(mocks.Fetcher)
	f.On("FetchJSON", mock.Anything, seasonURL, forced).Return(seasonJSON, nil).Once()
	f.On("FetchJSON", mock.Anything, seasonURL, forced).Return(polledSeasonJSON, nil)
	f.On("FetchJSON", mock.Anything, teamAURL, fetcher.Options{}).Return(`{"players": [{"summonerName": "Faker"}, {"summonerName": "Bang"}]}`, nil)
	f.On("FetchJSON", mock.Anything, mock.Anything, mock.Anything).Return(nil, fetcher.ErrNotFound)
	return f
}

func TestProvider_Identity(t *testing.T) {
	d1 := New(Config{Division: "D1"}, new(mocks.Fetcher), zap.NewNop())
	assert.Equal(t, "grumble-D1", d1.LeagueID())
	assert.Equal(t, "Draft", d1.Name())
	assert.Equal(t, []string{"D1"}, d1.Aliases())
	assert.False(t, d1.StatsEnabled())

	d2 := New(Config{Division: "D2"}, new(mocks.Fetcher), zap.NewNop())
	assert.Equal(t, "Open", d2.Name())
}

func TestProvider_LoadData(t *testing.T) {
	p := newTestProvider(fixtureFetcher())
	require.NoError(t, p.LoadData(context.Background()))
	require.True(t, p.Commit())

	brackets := p.Brackets()
	require.Len(t, brackets, 2)
	season, playoffs := brackets[0], brackets[1]
	assert.Equal(t, "grumble-D1-season", season.ID)
	assert.Equal(t, "Regular Season", season.Name)
	assert.False(t, season.IsPlayoffs)
	assert.Equal(t, "grumble-D1-playoffs", playoffs.ID)
	assert.True(t, playoffs.IsPlayoffs)
	assert.Empty(t, playoffs.Schedule, "failed playoffs fetch leaves the bracket empty")

	t.Run("standings rank by points with shared ranks", func(t *testing.T) {
		require.Len(t, season.Standings, 4)
		var got []string
		for _, s := range season.Standings {
			got = append(got, s.Team.ID)
		}
		assert.Equal(t, []string{"A", "C", "D", "B"}, got)
		assert.Equal(t, []int{1, 2, 2, 4}, []int{
			season.Standings[0].Rank, season.Standings[1].Rank,
			season.Standings[2].Rank, season.Standings[3].Rank,
		})
		assert.Equal(t, model.TeamStanding{Rank: 1, Team: season.Standings[0].Team, Wins: 1, Points: 3}, season.Standings[0])
		assert.Equal(t, 1, season.Standings[1].Ties)
		assert.Equal(t, 1, season.Standings[1].Points)
		assert.Equal(t, 1, season.Standings[3].Losses)
		assert.Equal(t, 0, season.Standings[3].Points)
		for i := 1; i < len(season.Standings); i++ {
			assert.GreaterOrEqual(t, season.Standings[i-1].Points, season.Standings[i].Points)
		}
	})

	t.Run("schedule", func(t *testing.T) {
		require.Len(t, season.Schedule, 4)
		m1 := season.Schedule[0]
		assert.Equal(t, "grumble-D1-grumble-D1-season-1", m1.ID())
		assert.Equal(t, "A", m1.Blue())
		assert.Equal(t, "B", m1.Red())
		assert.Equal(t, "A", m1.Winner())
		assert.Equal(t, time.Unix(1530000000, 0).UTC(), m1.Time())
		assert.Equal(t, []model.GameInstance{{ID: "123", Realm: "NA1", Hash: "NA0-code"}}, m1.Games())

		assert.Equal(t, model.Tie, season.Schedule[1].Winner())
		assert.Empty(t, season.Schedule[2].Winner())
		assert.False(t, season.Schedule[2].Scheduled())
		assert.Equal(t, model.TBD, season.Schedule[3].Blue())
		assert.False(t, season.Schedule[3].Announced())
	})

	t.Run("teams created on first sighting", func(t *testing.T) {
		teams := p.Teams()
		require.Len(t, teams, 4)
		assert.Equal(t, "A", teams[0].ID)
		assert.Equal(t, "Alpha", teams[0].Name)
		assert.Equal(t, "grumble-D1", teams[0].LeagueID)
		require.Len(t, teams[0].Players, 2)
		assert.Equal(t, model.Player{SummonerName: "Faker", TeamID: "A", Position: model.PositionUnknown}, teams[0].Players[0])
		assert.Empty(t, teams[1].Players)
	})
}

func TestProvider_UpdateMatches(t *testing.T) {
	p := newTestProvider(fixtureFetcher())
	require.NoError(t, p.LoadData(context.Background()))
	require.True(t, p.Commit())
	standings := p.Brackets()[0].Standings

	changed := p.UpdateMatches(context.Background())
	require.Len(t, changed, 1)
	assert.Equal(t, "grumble-D1-grumble-D1-season-3", changed[0].ID())
	assert.Equal(t, "A", changed[0].Winner())

	m1, ok := p.Match("grumble-D1-grumble-D1-season-1")
	require.True(t, ok)
	assert.Equal(t, "A", m1.Winner(), "decided matches are never revisited")
	assert.Equal(t, standings, p.Brackets()[0].Standings, "standings only change on reload")

	assert.Empty(t, p.UpdateMatches(context.Background()))
}

func TestProvider_SeasonFailureKeepsState(t *testing.T) {
	f := new(mocks.Fetcher)
	f.On("FetchJSON", mock.Anything, seasonURL, forced).Return(seasonJSON, nil).Once()
	f.On("FetchJSON", mock.Anything, seasonURL, forced).Return(nil, errors.New("upstream down"))
	f.On("FetchJSON", mock.Anything, playoffsURL, forced).Return(`{"schedule": []}`, nil)
	f.On("FetchJSON", mock.Anything, mock.Anything, mock.Anything).Return(nil, fetcher.ErrNotFound)

	p := newTestProvider(f)
	require.NoError(t, p.LoadData(context.Background()))
	require.True(t, p.Commit())

	assert.Error(t, p.LoadData(context.Background()))
	assert.Len(t, p.Teams(), 4)
	assert.Len(t, p.Brackets()[0].Schedule, 4)
	assert.Empty(t, p.UpdateMatches(context.Background()))
}

func TestRank(t *testing.T) {
	standings := []*model.TeamStanding{
		{Team: &model.Team{ID: "w"}, Points: 1},
		{Team: &model.Team{ID: "x"}, Points: 6},
		{Team: &model.Team{ID: "y"}, Points: 1},
		{Team: &model.Team{ID: "z"}, Points: 6},
		{Team: &model.Team{ID: "v"}, Points: 0},
	}
	ranked := rank(standings)

	var ids []string
	var ranks []int
	for _, s := range ranked {
		ids = append(ids, s.Team.ID)
		ranks = append(ranks, s.Rank)
	}
	assert.Equal(t, []string{"x", "z", "w", "y", "v"}, ids)
	assert.Equal(t, []int{1, 1, 3, 3, 5}, ranks)
	assert.Empty(t, rank(nil))
}
