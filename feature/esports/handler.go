package esports

import (
	"context"
	"errors"
	"net/url"
	"time"

	"esports-tracker/core/logger"
	"esports-tracker/feature/esports/engine"
	"esports-tracker/feature/esports/nameindex"
	"esports-tracker/feature/esports/stats"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for esports data.
type Handler struct {
	engine Engine
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(eng Engine, logger *zap.Logger) *Handler {
	return &Handler{engine: eng, logger: logger}
}

// RegisterRoutes registers the esports routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/esports")
	group.Get("/status", h.HandleStatus)
	group.Post("/reload", h.HandleReload)

	group.Get("/schedule", h.requireReady, h.HandleSchedule)
	group.Get("/results", h.requireReady, h.HandleResults)
	group.Get("/standings/:league", h.requireReady, h.HandleStandings)
	group.Get("/champs/:region/top", h.requireReady, h.HandleTopChamps)
	group.Get("/champs/:region/unique", h.requireReady, h.HandleUniqueChamps)
	group.Get("/champs/:region/:champ", h.requireReady, h.HandleChampRate)
	group.Get("/players/:name", h.requireReady, h.HandlePlayer)
}

func (h *Handler) requireReady(c *fiber.Ctx) error {
	if !h.engine.IsReady() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": engine.ErrNotReady.Error(),
		})
	}
	return c.Next()
}

// param returns the unescaped route parameter key.
func param(c *fiber.Ctx, key string) string {
	v := c.Params(key)
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

// queryError maps query failures to status codes.
func (h *Handler) queryError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, engine.ErrNotReady):
		status = fiber.StatusServiceUnavailable
	case errors.Is(err, nameindex.ErrNotFound), errors.Is(err, nameindex.ErrAmbiguous):
		status = fiber.StatusNotFound
	default:
		logger.WithRayID(h.logger, c).Error("Esports query failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// HandleStatus reports whether data is loaded.
// @Summary Esports Status
// @Description Reports readiness and the generation of the current snapshot.
// @Tags esports
// @Produce json
// @Success 200 {object} map[string]interface{} "Status"
// @Router /esports/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	status := fiber.Map{
		"ready":      h.engine.IsReady(),
		"generation": h.engine.Generation(),
		"loaded_at":  nil,
	}
	if at := h.engine.LoadedAt(); !at.IsZero() {
		status["loaded_at"] = at.Format(time.RFC3339)
	}
	return c.JSON(status)
}

// HandleReload flushes caches and reloads in the background.
// @Summary Reload Esports Data
// @Description Flushes the fetch cache and starts a full reload.
// @Tags esports
// @Produce json
// @Success 202 {object} map[string]string "Accepted"
// @Router /esports/reload [post]
func (h *Handler) HandleReload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	go func() {
		if err := h.engine.ReloadData(context.Background()); err != nil {
			l.Error("Esports reload failed", zap.Error(err))
		}
	}()
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status": "reloading",
	})
}

// HandleSchedule lists upcoming matches.
// @Summary Get Schedule
// @Description Upcoming and live matches of a team or league.
// @Tags esports
// @Produce json
// @Param q query string false "Team or league (default All)"
// @Param playoffs query bool false "Include playoff matches"
// @Param limit query int false "Maximum entries (default 5)"
// @Success 200 {object} map[string]interface{} "Schedule"
// @Failure 503 {object} map[string]string "Not Ready"
// @Router /esports/schedule [get]
func (h *Handler) HandleSchedule(c *fiber.Ctx) error {
	entries, qualifier := h.engine.GetSchedule(
		c.Query("q", engine.QualifierAll),
		c.QueryBool("playoffs", false),
		c.QueryInt("limit", engine.DefaultLimit),
	)
	return c.JSON(fiber.Map{
		"qualifier": qualifier,
		"entries":   entries,
	})
}

// HandleResults lists decided matches.
// @Summary Get Results
// @Description Decided matches of a team or league, newest first.
// @Tags esports
// @Produce json
// @Param q query string false "Team or league (default All)"
// @Param limit query int false "Maximum entries (default 5)"
// @Success 200 {object} map[string]interface{} "Results"
// @Failure 503 {object} map[string]string "Not Ready"
// @Router /esports/results [get]
func (h *Handler) HandleResults(c *fiber.Ctx) error {
	entries, qualifier := h.engine.GetResults(
		c.Query("q", engine.QualifierAll),
		c.QueryInt("limit", engine.DefaultLimit),
	)
	return c.JSON(fiber.Map{
		"qualifier": qualifier,
		"entries":   entries,
	})
}

// HandleStandings renders the standings of a league.
// @Summary Get Standings
// @Description Standings of every bracket of a league matching the bracket fragment.
// @Tags esports
// @Produce json
// @Param league path string true "League id or alias"
// @Param bracket query string false "Bracket name or id fragment"
// @Success 200 {object} map[string]interface{} "Standings"
// @Failure 404 {object} map[string]string "Unknown League"
// @Router /esports/standings/{league} [get]
func (h *Handler) HandleStandings(c *fiber.Ctx) error {
	lines, err := h.engine.GetStandings(param(c, "league"), c.Query("bracket"))
	if err != nil {
		return h.queryError(c, err)
	}
	return c.JSON(fiber.Map{
		"lines": lines,
	})
}

// HandleTopChamps ranks champions of a region.
// @Summary Get Top Champions
// @Description Top five champions of a region, dropping those picked in under 5% of games.
// @Tags esports
// @Produce json
// @Param region path string true "League id, alias or 'all'"
// @Param sort query string false "picks, bans, presence, wins or winrate"
// @Param asc query bool false "Sort ascending"
// @Success 200 {object} map[string]interface{} "Champions"
// @Failure 400 {object} map[string]string "Bad Sort Key"
// @Router /esports/champs/{region}/top [get]
func (h *Handler) HandleTopChamps(c *fiber.Ctx) error {
	key, err := stats.ParseSortKey(c.Query("sort"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	games, champs := h.engine.GetTopPickBanChamps(param(c, "region"), key, !c.QueryBool("asc", false))
	return c.JSON(fiber.Map{
		"num_games": games,
		"champs":    champs,
	})
}

// HandleUniqueChamps counts distinct champions of a region.
// @Summary Get Unique Champion Count
// @Tags esports
// @Produce json
// @Param region path string true "League id, alias or 'all'"
// @Success 200 {object} map[string]int "Count"
// @Router /esports/champs/{region}/unique [get]
func (h *Handler) HandleUniqueChamps(c *fiber.Ctx) error {
	unique, games := h.engine.GetUniqueChampCount(param(c, "region"))
	return c.JSON(fiber.Map{
		"unique":    unique,
		"num_games": games,
	})
}

// HandleChampRate returns the pick/ban tally of one champion.
// @Summary Get Champion Pick/Ban Rate
// @Tags esports
// @Produce json
// @Param region path string true "League id, alias or 'all'"
// @Param champ path string true "Champion name"
// @Success 200 {object} map[string]interface{} "Champion"
// @Failure 404 {object} map[string]string "Unknown Champion"
// @Router /esports/champs/{region}/{champ} [get]
func (h *Handler) HandleChampRate(c *fiber.Ctx) error {
	name, rate, err := h.engine.GetChampPickBanRate(param(c, "region"), param(c, "champ"))
	if err != nil {
		return h.queryError(c, err)
	}
	return c.JSON(fiber.Map{
		"champ": name,
		"stats": rate,
	})
}

// HandlePlayer returns the champion tally of one player.
// @Summary Get Player Champion Stats
// @Tags esports
// @Produce json
// @Param name path string true "Player name or nickname"
// @Success 200 {object} map[string]interface{} "Player"
// @Failure 404 {object} map[string]string "Unknown Or Ambiguous Player"
// @Router /esports/players/{name} [get]
func (h *Handler) HandlePlayer(c *fiber.Ctx) error {
	name, player, err := h.engine.GetPlayerChampStats(param(c, "name"))
	if err != nil {
		return h.queryError(c, err)
	}
	return c.JSON(fiber.Map{
		"name":      name,
		"num_games": player.NumGames,
		"champs":    player.Champs,
	})
}
