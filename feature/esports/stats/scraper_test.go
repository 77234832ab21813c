package stats_test

import (
	"context"
	"testing"
	"time"

	"esports-tracker/core/fetcher"
	"esports-tracker/core/fetcher/mocks"
	"esports-tracker/feature/esports/model"
	"esports-tracker/feature/esports/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type champNames map[string]string

func (c champNames) NameFromID(id string) (string, bool) {
	name, ok := c[id]
	return name, ok
}

const gameJSON = `{
  "participantIdentities": [
    {"participantId": 1, "player": {"summonerName": "TSM Bjergsen"}},
    {"participantId": 2, "player": {"summonerName": "C9 Jensen"}}
  ],
  "teams": [
    {"teamId": 100, "win": "Win", "bans": [{"championId": 1}, {}, {"championId": -1}, {"championId": "n/a"}]},
    {"teamId": 200, "win": "Fail", "bans": [{"championId": 2}, {"championId": 62}]}
  ],
  "participants": [
    {"participantId": 1, "teamId": 100, "championId": 61},
    {"participantId": 2, "teamId": 200, "championId": 62},
    {"participantId": 3, "teamId": 200, "championId": 999},
    {"participantId": 4, "teamId": 200}
  ]
}`

func TestScraper_ScrapeMatch(t *testing.T) {
	f := new(mocks.Fetcher)
	f.On("FetchJSON", mock.Anything, "https://acs.leagueoflegends.com/v1/stats/game/TRLH1/1001?gameHash=h1", fetcher.Options{UseStorage: true}).
		Return(gameJSON, nil)
	f.On("FetchJSON", mock.Anything, mock.Anything, mock.Anything).Return(nil, fetcher.ErrNotFound)

	m := model.NewMatch(model.MatchData{
		ID:     "m1",
		Blue:   "TSM",
		Red:    "C9",
		Winner: "TSM",
		Games: []model.GameInstance{
			{ID: "1001", Realm: "TRLH1", Hash: "h1"},
			{ID: "1002", Realm: "TRLH1", Hash: "h2"},
			{ID: "1003", Realm: "TRLH1"},
		},
	}, nil, 0, time.Now())

	s := stats.NewScraper(f, champNames{"61": "Orianna", "62": "Wukong"}, zap.NewNop())
	snap := stats.NewSnapshot()
	s.ScrapeMatch(context.Background(), "NA", m, snap)

	assert.Equal(t, map[string]int{"NA": 1}, snap.NumGames, "unplayed and unfetchable games are not counted")
	f.AssertNotCalled(t, "FetchJSON", mock.Anything, "https://acs.leagueoflegends.com/v1/stats/game/TRLH1/1003?gameHash=", mock.Anything)

	assert.Equal(t, stats.Counters{Picks: 1, Wins: 1}, snap.ChampIn("61", "NA"))
	assert.Equal(t, stats.Counters{Picks: 1, Bans: 1}, snap.ChampIn("62", "NA"))
	assert.Equal(t, stats.Counters{Bans: 1}, snap.ChampIn("1", "all"))
	assert.Equal(t, stats.Counters{Picks: 1}, snap.ChampIn("999", "NA"))
	assert.Equal(t, []string{"1", "2", "61", "62", "999"}, snap.ChampIDsIn("NA"), "bans without a champion are skipped")

	t.Run("players keyed canonically", func(t *testing.T) {
		bjerg, ok := snap.Players["tsmbjergsen"]
		require.True(t, ok)
		assert.Equal(t, "TSM Bjergsen", bjerg.Name)
		assert.Equal(t, stats.Counters{Picks: 1, Wins: 1}, *bjerg.Champs["Orianna"])
		assert.Equal(t, stats.Counters{Picks: 1, Wins: 1}, bjerg.Games)

		jensen := snap.Players["c9jensen"]
		require.NotNil(t, jensen)
		assert.Equal(t, stats.Counters{Picks: 1}, jensen.Games)

		anon := snap.Players["hypebot"]
		require.NotNil(t, anon)
		assert.Equal(t, "HypeBot", anon.Name)
		assert.Contains(t, anon.Champs, "999")
	})
}

func TestSnapshot_Queries(t *testing.T) {
	a := stats.NewSnapshot()
	a.Champs["61"] = map[string]*stats.Counters{"NA": {Picks: 3, Wins: 2}, "EU": {Picks: 1, Bans: 4}}
	a.Champs["62"] = map[string]*stats.Counters{"EU": {Bans: 2}}
	a.NumGames["NA"] = 10
	a.NumGames["EU"] = 5
	a.Players["faker"] = &stats.Player{Name: "Faker", Champs: map[string]*stats.Counters{"Orianna": {Picks: 2, Wins: 1}}, Games: stats.Counters{Picks: 2, Wins: 1}}

	assert.Equal(t, 15, a.GamesIn("all"))
	assert.Equal(t, 15, a.GamesIn("ALL"))
	assert.Equal(t, 10, a.GamesIn("NA"))
	assert.Equal(t, 0, a.GamesIn("LCK"))
	assert.Equal(t, stats.Counters{Picks: 4, Bans: 4, Wins: 2}, a.ChampIn("61", "all"))
	assert.Equal(t, []string{"61", "62"}, a.ChampIDsIn("EU"))
	assert.Equal(t, []string{"61"}, a.ChampIDsIn("NA"))

	b := stats.NewSnapshot()
	b.Champs["61"] = map[string]*stats.Counters{"NA": {Picks: 1}}
	b.NumGames["NA"] = 2
	b.Players["faker"] = &stats.Player{Name: "FAKER", Champs: map[string]*stats.Counters{"Orianna": {Picks: 1}, "Ryze": {Picks: 1, Wins: 1}}, Games: stats.Counters{Picks: 2, Wins: 1}}

	a.Merge(b)
	assert.Equal(t, 12, a.GamesIn("NA"))
	assert.Equal(t, stats.Counters{Picks: 4, Wins: 2}, a.ChampIn("61", "NA"))
	assert.Equal(t, "Faker", a.Players["faker"].Name)
	assert.Equal(t, stats.Counters{Picks: 3, Wins: 1}, *a.Players["faker"].Champs["Orianna"])
	assert.Equal(t, stats.Counters{Picks: 4, Wins: 2}, a.Players["faker"].Games)
}

func TestSortKey(t *testing.T) {
	c := stats.Counters{Picks: 4, Bans: 6, Wins: 1}
	tests := []struct {
		name string
		want float64
	}{
		{"", 4},
		{"picks", 4},
		{"BANS", 6},
		{"presence", 10},
		{"wins", 1},
		{"winrate", 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := stats.ParseSortKey(tt.name)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, k.Value(c), 1e-9)
		})
	}

	_, err := stats.ParseSortKey("kda")
	assert.Error(t, err)
	assert.Zero(t, stats.Counters{}.WinRate())
}
