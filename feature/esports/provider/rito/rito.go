package rito

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"esports-tracker/core/fetcher"
	"esports-tracker/core/utils"
	"esports-tracker/feature/esports/model"
	"esports-tracker/feature/esports/provider"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BaseURL is the lolesports API root.
const BaseURL = "http://api.lolesports.com/api/"

const (
	leaguesPath       = "v1/leagues?slug=%s"
	matchDetailsPath  = "v2/highlanderMatchDetails?tournamentId=%s&matchId=%s"
	scheduleItemsPath = "v1/scheduleItems?id=%s"
	teamsPath         = "v1/teams?slug=%s&tournament=%s"
)

var positions = map[string]model.Position{
	"toplane": model.PositionTop,
	"jungle":  model.PositionJungle,
	"midlane": model.PositionMid,
	"adcarry": model.PositionADC,
	"support": model.PositionSupport,
}

// Config describes one lolesports league.
type Config struct {
	// Region is both the league id and its display name, e.g. "NA".
	Region string
	// Slug is the upstream league slug, e.g. "na-lcs".
	Slug         string
	Aliases      []string
	StatsEnabled bool
	// BaseURL overrides the API root; empty means BaseURL.
	BaseURL string
}

// Provider scrapes a lolesports league.
type Provider struct {
	*provider.Base

	cfg     Config
	fetcher fetcher.Fetcher
	logger  *zap.Logger
	now     func() time.Time
}

// New creates a provider for the league described by cfg.
func New(cfg Config, f fetcher.Fetcher, logger *zap.Logger) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = BaseURL
	}
	return &Provider{
		Base:    provider.NewBase(provider.KindRito, cfg.StatsEnabled),
		cfg:     cfg,
		fetcher: f,
		logger:  logger.With(zap.String("league", cfg.Region)),
		now:     time.Now,
	}
}

// LeagueID returns the region code.
func (p *Provider) LeagueID() string { return p.cfg.Region }

// Name returns the region code.
func (p *Provider) Name() string { return p.cfg.Region }

// Aliases returns the configured alternate names.
func (p *Provider) Aliases() []string { return append([]string(nil), p.cfg.Aliases...) }

// bracketBuild collects a bracket and its match values until schedule times are joined.
type bracketBuild struct {
	bracket *model.Bracket
	matches []*model.MatchData
}

// LoadData rebuilds teams, brackets and matches from the active tournaments and stages them.
func (p *Provider) LoadData(ctx context.Context) error {
	league, err := p.fetchLeague(ctx, fetcher.Options{})
	if err != nil {
		return err
	}
	now := p.now()
	gen := p.Epoch().Next()

	teams, byUpstreamID := p.extractTeams(league)
	rawTeams := make(map[string]rawTeam, len(league.Teams))
	for _, t := range league.Teams {
		rawTeams[t.ID.String()] = t
	}

	var builds []*bracketBuild
	buildIndex := make(map[string]int)
	matches := make(map[string]*model.MatchData)

	for _, t := range activeTournaments(league.Tournaments, now) {
		p.logger.Info("Pulling esports data",
			zap.String("tournament", t.Title),
			zap.String("slug", p.cfg.Slug))

		rosters := p.resolveRosters(t, byUpstreamID)
		p.loadPlayers(ctx, t, byUpstreamID, rawTeams)

		for _, key := range provider.SortedKeys(t.Brackets) {
			b := p.buildBracket(ctx, t, t.Brackets[key], rosters, league.Records)
			for _, m := range b.matches {
				matches[m.ID] = m
			}
			if i, ok := buildIndex[b.bracket.ID]; ok {
				builds[i] = b
				continue
			}
			buildIndex[b.bracket.ID] = len(builds)
			builds = append(builds, b)
		}
	}

	p.joinScheduleTimes(ctx, league, matches)

	brackets := make([]*model.Bracket, 0, len(builds))
	for _, b := range builds {
		for _, data := range b.matches {
			b.bracket.Schedule = append(b.bracket.Schedule, model.NewMatch(*data, p.Epoch(), gen, now))
		}
		brackets = append(brackets, b.bracket)
	}
	p.Stage(gen, provider.State{Teams: teams, Brackets: brackets})
	return nil
}

// UpdateMatches refetches the league bypassing caches and patches TBD teams and
// missing winners into the live matches.
func (p *Provider) UpdateMatches(ctx context.Context) []*model.Match {
	league, err := p.fetchLeague(ctx, fetcher.Options{ForceLookup: true})
	if err != nil {
		p.logger.Warn("Failed to poll league", zap.Error(err))
		return nil
	}
	_, byUpstreamID := p.extractTeams(league)

	var changed []*model.Match
	seen := make(map[string]struct{})
	for _, t := range activeTournaments(league.Tournaments, p.now()) {
		rosters := p.resolveRosters(t, byUpstreamID)
		for _, bk := range provider.SortedKeys(t.Brackets) {
			br := t.Brackets[bk]
			for _, mk := range provider.SortedKeys(br.Matches) {
				rm := br.Matches[mk]
				m, ok := p.Match(matchID(mk, rm))
				if !ok {
					continue
				}
				updated := false
				if m.Blue() == model.TBD || m.Red() == model.TBD {
					if blue, red, ok := matchTeams(rm, rosters); ok && m.SetTeams(blue, red) {
						updated = true
					}
				}
				if m.Winner() == "" && m.SetWinner(winner(rm.Standings, rosters)) {
					updated = true
				}
				if _, dup := seen[m.ID()]; updated && !dup {
					seen[m.ID()] = struct{}{}
					changed = append(changed, m)
				}
			}
		}
	}
	return changed
}

func (p *Provider) fetchLeague(ctx context.Context, opts fetcher.Options) (*leagueResponse, error) {
	var league leagueResponse
	if err := p.fetch(ctx, fmt.Sprintf(leaguesPath, url.QueryEscape(p.cfg.Slug)), opts, &league); err != nil {
		return nil, fmt.Errorf("failed to fetch league %s: %w", p.cfg.Slug, err)
	}
	if len(league.Leagues) == 0 {
		return nil, fmt.Errorf("league %s has no league descriptor", p.cfg.Slug)
	}
	return &league, nil
}

func (p *Provider) fetch(ctx context.Context, path string, opts fetcher.Options, out any) error {
	target := p.cfg.BaseURL + path
	body, err := p.fetcher.FetchJSON(ctx, target, opts)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", target, err)
	}
	return nil
}

// extractTeams builds the league's teams keyed by the upstream numeric id. Team ids are
// the acronyms, which users actually type.
func (p *Provider) extractTeams(league *leagueResponse) ([]*model.Team, map[string]*model.Team) {
	teams := make([]*model.Team, 0, len(league.Teams))
	byUpstreamID := make(map[string]*model.Team, len(league.Teams))
	for _, t := range league.Teams {
		team := &model.Team{ID: t.Acronym, Name: t.Name, LeagueID: p.LeagueID()}
		teams = append(teams, team)
		byUpstreamID[t.ID.String()] = team
	}
	return teams, byUpstreamID
}

// resolveRosters maps the tournament's roster ids to teams. Rosters without a team
// belong to All-Star players and get a team named after the roster.
func (p *Provider) resolveRosters(t rawTournament, byUpstreamID map[string]*model.Team) map[string]*model.Team {
	rosters := make(map[string]*model.Team, len(t.Rosters))
	for id, r := range t.Rosters {
		if r.Team == "" {
			rosters[id] = &model.Team{ID: r.Name, Name: r.Name}
			continue
		}
		team, ok := byUpstreamID[r.Team.String()]
		if !ok {
			p.logger.Warn("Roster references unknown team",
				zap.String("roster", id),
				zap.String("team", r.Team.String()))
			continue
		}
		rosters[id] = team
	}
	return rosters
}

func (p *Provider) loadPlayers(ctx context.Context, t rawTournament, byUpstreamID map[string]*model.Team, rawTeams map[string]rawTeam) {
	for _, id := range provider.SortedKeys(t.Rosters) {
		upstreamID := t.Rosters[id].Team.String()
		team, ok := byUpstreamID[upstreamID]
		raw, hasRaw := rawTeams[upstreamID]
		if !ok || !hasRaw || len(team.Players) > 0 {
			continue
		}

		var resp teamResponse
		path := fmt.Sprintf(teamsPath, url.QueryEscape(raw.Slug), url.QueryEscape(t.ID))
		if err := p.fetch(ctx, path, fetcher.Options{UseStorage: true}, &resp); err != nil {
			p.logger.Warn("Failed to fetch team players", zap.String("team", team.ID), zap.Error(err))
			continue
		}
		for _, pl := range resp.Players {
			pos, ok := positions[pl.RoleSlug]
			if !ok {
				pos = model.PositionUnknown
			}
			team.Players = append(team.Players, model.Player{
				SummonerName: pl.Name,
				TeamID:       team.ID,
				Position:     pos,
				IsSubstitute: raw.isSub(pl.ID),
			})
		}
	}
}

func (p *Provider) buildBracket(ctx context.Context, t rawTournament, br rawBracket, rosters map[string]*model.Team, records []rawRecord) *bracketBuild {
	b := &model.Bracket{
		ID:         provider.BracketID(p.LeagueID(), br.Name),
		Name:       cases.Title(language.Und).String(strings.ReplaceAll(br.Name, "_", " ")),
		LeagueID:   p.LeagueID(),
		IsPlayoffs: strings.Contains(strings.ToLower(br.Name), "playoff"),
	}
	b.Standings = p.standings(t, br, rosters, records)

	build := &bracketBuild{bracket: b}
	for _, key := range provider.SortedKeys(br.Matches) {
		rm := br.Matches[key]
		blue, red, ok := matchTeams(rm, rosters)
		if !ok {
			continue
		}
		data := &model.MatchData{
			ID:        matchID(key, rm),
			BracketID: b.ID,
			Blue:      blue,
			Red:       red,
		}
		var placeholders []string
		for _, gk := range provider.SortedKeys(rm.Games) {
			g := rm.Games[gk]
			if g.ID == "" {
				continue
			}
			data.Games = append(data.Games, model.GameInstance{ID: g.GameID.String(), Realm: g.GameRealm})
			placeholders = append(placeholders, g.ID)
		}
		if rm.Standings != nil {
			data.Winner = winner(rm.Standings, rosters)
			p.resolveHashes(ctx, t.ID, data, placeholders)
		}
		build.matches = append(build.matches, data)
	}
	return build
}

// standings prefers explicit rank groups; otherwise every record of the bracket is listed unranked.
func (p *Provider) standings(t rawTournament, br rawBracket, rosters map[string]*model.Team, records []rawRecord) []model.TeamStanding {
	row := func(rec rawRecord, rank int) (model.TeamStanding, bool) {
		team, ok := rosters[rec.Roster]
		if !ok {
			p.logger.Warn("Skipping record of unknown roster", zap.String("roster", rec.Roster))
			return model.TeamStanding{}, false
		}
		return model.TeamStanding{
			Rank:   rank,
			Team:   team,
			Wins:   rec.Wins,
			Losses: rec.Losses,
			Ties:   rec.Ties,
			Points: rec.Score,
		}, true
	}
	inBracket := func(rec rawRecord) bool {
		return rec.Tournament == t.ID && rec.Bracket == br.ID
	}

	var out []model.TeamStanding
	if br.Standings != nil {
		for _, group := range br.Standings.Result {
			rank := len(out) + 1
			for _, ref := range group {
				for _, rec := range records {
					if !inBracket(rec) || rec.Roster != ref.Roster {
						continue
					}
					if s, ok := row(rec, rank); ok {
						out = append(out, s)
					}
					break
				}
			}
		}
		return out
	}
	for _, rec := range records {
		if !inBracket(rec) {
			continue
		}
		if s, ok := row(rec, 0); ok {
			out = append(out, s)
		}
	}
	return out
}

// resolveHashes swaps the game placeholders for verification hashes. Games without a
// mapping keep an empty hash and are treated as not played.
func (p *Provider) resolveHashes(ctx context.Context, tournamentID string, data *model.MatchData, placeholders []string) {
	var resp matchDetailsResponse
	path := fmt.Sprintf(matchDetailsPath, url.QueryEscape(tournamentID), url.QueryEscape(data.ID))
	if err := p.fetch(ctx, path, fetcher.Options{UseStorage: true}, &resp); err != nil {
		p.logger.Warn("Failed to fetch match details", zap.String("match", data.ID), zap.Error(err))
		return
	}
	hashes := make(map[string]string, len(resp.GameIDMappings))
	for _, m := range resp.GameIDMappings {
		hashes[m.ID] = m.GameHash
	}
	for i := range data.Games {
		data.Games[i].Hash = hashes[placeholders[i]]
	}
}

// joinScheduleTimes attaches scheduled times, which only the schedule items endpoint serves.
func (p *Provider) joinScheduleTimes(ctx context.Context, league *leagueResponse, matches map[string]*model.MatchData) {
	if len(matches) == 0 {
		return
	}
	var resp scheduleItemsResponse
	path := fmt.Sprintf(scheduleItemsPath, url.QueryEscape(league.Leagues[0].ID.String()))
	if err := p.fetch(ctx, path, fetcher.Options{}, &resp); err != nil {
		p.logger.Warn("Failed to fetch schedule items", zap.Error(err))
		return
	}
	for _, item := range resp.ScheduleItems {
		data, ok := matches[item.Match]
		if !ok {
			continue
		}
		ts, err := utils.ParseTime(item.ScheduledTime)
		if err != nil {
			p.logger.Warn("Skipping malformed schedule time",
				zap.String("match", item.Match),
				zap.String("time", item.ScheduledTime))
			continue
		}
		data.Time = ts
	}
}

// activeTournaments returns every tournament running at now, or the one with the newest
// start date when none is running, even if it already ended.
func activeTournaments(tournaments []rawTournament, now time.Time) []rawTournament {
	var active []rawTournament
	var newest *rawTournament
	var newestStart time.Time
	for i := range tournaments {
		t := &tournaments[i]
		if t.StartDate == "" {
			continue
		}
		start, err := utils.ParseTime(t.StartDate)
		if err != nil {
			continue
		}
		if newest == nil || start.After(newestStart) {
			newest, newestStart = t, start
		}
		end, err := utils.ParseTime(t.EndDate)
		if err == nil && !now.Before(start) && !now.After(end) {
			active = append(active, *t)
		}
	}
	if len(active) > 0 {
		return active
	}
	if newest != nil {
		return []rawTournament{*newest}
	}
	return nil
}

// matchTeams returns the participants of a two-sided match. Sides without a roster are TBD.
func matchTeams(rm rawMatch, rosters map[string]*model.Team) (string, string, bool) {
	if len(rm.Input) != 2 {
		return "", "", false
	}
	side := func(ref rawRosterRef) string {
		if team, ok := rosters[ref.Roster]; ok {
			return team.ID
		}
		return model.TBD
	}
	return side(rm.Input[0]), side(rm.Input[1]), true
}

// winner applies the top group rule: one team wins, several tie, none is undecided.
func winner(s *rawStandings, rosters map[string]*model.Team) string {
	if s == nil || len(s.Result) == 0 {
		return ""
	}
	top := s.Result[0]
	switch {
	case len(top) > 1:
		return model.Tie
	case len(top) == 1:
		if team, ok := rosters[top[0].Roster]; ok {
			return team.ID
		}
	}
	return ""
}

func matchID(key string, rm rawMatch) string {
	if rm.ID != "" {
		return rm.ID
	}
	return key
}
