package esports_test

import (
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"esports-tracker/feature/esports"
	"esports-tracker/feature/esports/engine"
	"esports-tracker/feature/esports/mocks"
	"esports-tracker/feature/esports/nameindex"
	"esports-tracker/feature/esports/stats"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(t *testing.T, eng esports.Engine) *fiber.App {
	t.Helper()
	app := fiber.New()
	require.NoError(t, esports.NewFeature(eng, zap.NewNop()).Load(app))
	return app
}

func do(t *testing.T, app *fiber.App, method, target string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil), 2000)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return resp.StatusCode, out
}

func TestFeature(t *testing.T) {
	f := esports.NewFeature(new(mocks.Engine), zap.NewNop())
	assert.Equal(t, "esports", f.Name())
	assert.True(t, f.IsEnabled())
}

func TestHandleStatus(t *testing.T) {
	loadedAt := time.Date(2018, 7, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Loaded", func(t *testing.T) {
		eng := new(mocks.Engine)
		eng.On("IsReady").Return(true)
		eng.On("Generation").Return(uint64(3))
		eng.On("LoadedAt").Return(loadedAt)

		status, body := do(t, newApp(t, eng), "GET", "/esports/status")
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, true, body["ready"])
		assert.Equal(t, float64(3), body["generation"])
		assert.Equal(t, "2018-07-01T12:00:00Z", body["loaded_at"])
	})

	t.Run("NotLoaded", func(t *testing.T) {
		eng := new(mocks.Engine)
		eng.On("IsReady").Return(false)
		eng.On("Generation").Return(uint64(0))
		eng.On("LoadedAt").Return(time.Time{})

		status, body := do(t, newApp(t, eng), "GET", "/esports/status")
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, false, body["ready"])
		assert.Nil(t, body["loaded_at"])
	})
}

func TestNotReady(t *testing.T) {
	eng := new(mocks.Engine)
	eng.On("IsReady").Return(false)
	app := newApp(t, eng)

	for _, target := range []string{
		"/esports/schedule",
		"/esports/results",
		"/esports/standings/NA",
		"/esports/champs/all/top",
		"/esports/champs/all/unique",
		"/esports/champs/all/Ahri",
		"/esports/players/faker",
	} {
		t.Run(target, func(t *testing.T) {
			status, body := do(t, app, "GET", target)
			assert.Equal(t, fiber.StatusServiceUnavailable, status)
			assert.Equal(t, engine.ErrNotReady.Error(), body["error"])
		})
	}
	eng.AssertNotCalled(t, "GetSchedule", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleSchedule(t *testing.T) {
	eng := new(mocks.Engine)
	eng.On("IsReady").Return(true)
	eng.On("GetSchedule", engine.QualifierAll, false, engine.DefaultLimit).
		Return([]string{"TSM v C9 : Sun 07/01 03:00PM PDT"}, engine.QualifierAll)
	eng.On("GetSchedule", "tsm", true, 2).
		Return([]string{"TSM v C9 : Bo3 - TBD"}, "TSM")
	app := newApp(t, eng)

	status, body := do(t, app, "GET", "/esports/schedule")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, engine.QualifierAll, body["qualifier"])
	assert.Equal(t, []any{"TSM v C9 : Sun 07/01 03:00PM PDT"}, body["entries"])

	status, body = do(t, app, "GET", "/esports/schedule?q=tsm&playoffs=true&limit=2")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "TSM", body["qualifier"])
	eng.AssertExpectations(t)
}

func TestHandleResults(t *testing.T) {
	eng := new(mocks.Engine)
	eng.On("IsReady").Return(true)
	eng.On("GetResults", "NA", 3).Return([]string{}, "NA")

	status, body := do(t, newApp(t, eng), "GET", "/esports/results?q=NA&limit=3")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "NA", body["qualifier"])
	assert.Equal(t, []any{}, body["entries"])
}

func TestHandleStandings(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		league     string
		bracket    string
		lines      []string
		err        error
		wantStatus int
	}{
		{
			name:       "Found",
			target:     "/esports/standings/North%20America?bracket=Season",
			league:     "North America",
			bracket:    "Season",
			lines:      []string{"NA-Season Standings (W-L)", " 1: TSM (3-0)"},
			wantStatus: fiber.StatusOK,
		},
		{
			name:       "UnknownLeague",
			target:     "/esports/standings/nowhere",
			league:     "nowhere",
			err:        fmt.Errorf("league nowhere: %w", nameindex.ErrNotFound),
			wantStatus: fiber.StatusNotFound,
		},
		{
			name:       "AmbiguousLeague",
			target:     "/esports/standings/e",
			league:     "e",
			err:        fmt.Errorf("league e: %w", nameindex.ErrAmbiguous),
			wantStatus: fiber.StatusNotFound,
		},
		{
			name:       "Failure",
			target:     "/esports/standings/NA",
			league:     "NA",
			err:        fmt.Errorf("boom"),
			wantStatus: fiber.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := new(mocks.Engine)
			eng.On("IsReady").Return(true)
			eng.On("GetStandings", tt.league, tt.bracket).Return(tt.lines, tt.err)

			status, body := do(t, newApp(t, eng), "GET", tt.target)
			assert.Equal(t, tt.wantStatus, status)
			if tt.err != nil {
				assert.Equal(t, tt.err.Error(), body["error"])
				return
			}
			assert.Len(t, body["lines"], len(tt.lines))
		})
	}
}

func TestHandleTopChamps(t *testing.T) {
	eng := new(mocks.Engine)
	eng.On("IsReady").Return(true)
	eng.On("GetTopPickBanChamps", "NA", stats.SortBans, false).Return(20, []engine.ChampCount{
		{Name: "Ahri", Counters: stats.Counters{Picks: 4, Bans: 9, Wins: 2}},
	})
	eng.On("GetTopPickBanChamps", "all", stats.SortPicks, true).Return(0, []engine.ChampCount{})
	app := newApp(t, eng)

	status, body := do(t, app, "GET", "/esports/champs/NA/top?sort=bans&asc=true")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(20), body["num_games"])
	champs := body["champs"].([]any)
	require.Len(t, champs, 1)
	assert.Equal(t, "Ahri", champs[0].(map[string]any)["name"])
	assert.Equal(t, float64(9), champs[0].(map[string]any)["bans"])

	status, _ = do(t, app, "GET", "/esports/champs/all/top")
	assert.Equal(t, fiber.StatusOK, status)

	status, body = do(t, app, "GET", "/esports/champs/all/top?sort=kda")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["error"], "kda")
	eng.AssertExpectations(t)
}

func TestHandleUniqueChamps(t *testing.T) {
	eng := new(mocks.Engine)
	eng.On("IsReady").Return(true)
	eng.On("GetUniqueChampCount", "EU").Return(41, 12)

	status, body := do(t, newApp(t, eng), "GET", "/esports/champs/EU/unique")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(41), body["unique"])
	assert.Equal(t, float64(12), body["num_games"])
}

func TestHandleChampRate(t *testing.T) {
	eng := new(mocks.Engine)
	eng.On("IsReady").Return(true)
	eng.On("GetChampPickBanRate", "all", "Kai'Sa").Return("Kai'Sa", engine.ChampRate{
		Counters: stats.Counters{Picks: 7, Bans: 3, Wins: 4},
		NumGames: 10,
	}, nil)
	eng.On("GetChampPickBanRate", "all", "nobody").
		Return("", engine.ChampRate{}, fmt.Errorf("champion nobody: %w", nameindex.ErrNotFound))
	app := newApp(t, eng)

	status, body := do(t, app, "GET", "/esports/champs/all/Kai'Sa")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Kai'Sa", body["champ"])
	rate := body["stats"].(map[string]any)
	assert.Equal(t, float64(7), rate["picks"])
	assert.Equal(t, float64(10), rate["num_games"])

	status, _ = do(t, app, "GET", "/esports/champs/all/nobody")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestHandlePlayer(t *testing.T) {
	eng := new(mocks.Engine)
	eng.On("IsReady").Return(true)
	eng.On("GetPlayerChampStats", "faker").Return("Faker", engine.PlayerChampStats{
		Champs:   map[string]stats.Counters{"Ryze": {Picks: 2, Wins: 1}},
		NumGames: stats.Counters{Picks: 2, Wins: 1},
	}, nil)
	eng.On("GetPlayerChampStats", "ha").
		Return("", engine.PlayerChampStats{}, fmt.Errorf("player ha: %w", nameindex.ErrAmbiguous))
	app := newApp(t, eng)

	status, body := do(t, app, "GET", "/esports/players/faker")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Faker", body["name"])
	assert.Equal(t, float64(2), body["num_games"].(map[string]any)["picks"])
	assert.Contains(t, body["champs"], "Ryze")

	status, body = do(t, app, "GET", "/esports/players/ha")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Contains(t, body["error"], "ambiguous")
}

func TestHandleReload(t *testing.T) {
	eng := new(mocks.Engine)
	done := make(chan struct{})
	eng.On("ReloadData", mock.Anything).Return(nil).Run(func(mock.Arguments) {
		close(done)
	})

	status, body := do(t, newApp(t, eng), "POST", "/esports/reload")
	assert.Equal(t, fiber.StatusAccepted, status)
	assert.Equal(t, "reloading", body["status"])

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reload was not triggered")
	}
	eng.AssertCalled(t, "ReloadData", mock.MatchedBy(func(ctx context.Context) bool { return ctx != nil }))
}
