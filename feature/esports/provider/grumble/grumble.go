package grumble

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"esports-tracker/core/fetcher"
	"esports-tracker/feature/esports/model"
	"esports-tracker/feature/esports/provider"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// BaseURL is the tournament REST root.
const BaseURL = "http://goog-lol-tournaments.appspot.com/rest"

const (
	season = "grumble-2018"

	outcomeVictory = "VICTORY"
	outcomeTie     = "TIE"

	pointsVictory = 3
	pointsTie     = 1
)

// DefaultRealm is the game realm of divisions configured without one.
const DefaultRealm = "NA1"

// Config describes one division.
type Config struct {
	Division     string
	Realm        string
	StatsEnabled bool
	// BaseURL overrides the API root; empty means BaseURL.
	BaseURL string
}

// Provider scrapes one grumble division.
type Provider struct {
	*provider.Base

	cfg     Config
	fetcher fetcher.Fetcher
	logger  *zap.Logger
	now     func() time.Time
}

// New creates a provider for the division described by cfg.
func New(cfg Config, f fetcher.Fetcher, logger *zap.Logger) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = BaseURL
	}
	if cfg.Realm == "" {
		cfg.Realm = DefaultRealm
	}
	return &Provider{
		Base:    provider.NewBase(provider.KindGrumble, cfg.StatsEnabled),
		cfg:     cfg,
		fetcher: f,
		logger:  logger.With(zap.String("division", cfg.Division)),
		now:     time.Now,
	}
}

// LeagueID returns "grumble-<division>".
func (p *Provider) LeagueID() string { return "grumble-" + p.cfg.Division }

// Name returns Draft for the first division and Open otherwise.
func (p *Provider) Name() string {
	if p.cfg.Division == "D1" {
		return "Draft"
	}
	return "Open"
}

// Aliases returns the division code.
func (p *Provider) Aliases() []string { return []string{p.cfg.Division} }

type bracketSpec struct {
	key        string
	name       string
	isPlayoffs bool
}

var bracketSpecs = []bracketSpec{
	{key: "season", name: "Regular Season"},
	{key: "playoffs", name: "Playoffs", isPlayoffs: true},
}

// teamSet collects teams in order of first sighting.
type teamSet struct {
	order []*model.Team
	byID  map[string]*model.Team
}

func (s *teamSet) get(id, name, leagueID string) *model.Team {
	if t, ok := s.byID[id]; ok {
		return t
	}
	t := &model.Team{ID: id, Name: name, LeagueID: leagueID}
	s.byID[id] = t
	s.order = append(s.order, t)
	return t
}

// LoadData rebuilds and stages both brackets. A failed season fetch aborts the load; a failed
// playoffs fetch leaves that bracket empty.
func (p *Provider) LoadData(ctx context.Context) error {
	now := p.now()
	gen := p.Epoch().Next()
	teams := &teamSet{byID: make(map[string]*model.Team)}

	brackets := make([]*model.Bracket, 0, len(bracketSpecs))
	for i, spec := range bracketSpecs {
		b := &model.Bracket{
			ID:         provider.BracketID(p.LeagueID(), spec.key),
			Name:       spec.name,
			LeagueID:   p.LeagueID(),
			IsPlayoffs: spec.isPlayoffs,
		}
		schedule, err := p.fetchBracket(ctx, spec.key)
		if err != nil {
			if i == 0 {
				return fmt.Errorf("failed to fetch %s season: %w", p.LeagueID(), err)
			}
			p.logger.Warn("Failed to fetch bracket", zap.String("bracket", spec.key), zap.Error(err))
		} else {
			p.parseSchedule(schedule, b, teams, gen, now)
		}
		brackets = append(brackets, b)
	}

	for _, team := range teams.order {
		p.loadPlayers(ctx, team)
	}

	p.Stage(gen, provider.State{Teams: teams.order, Brackets: brackets})
	return nil
}

// UpdateMatches re-walks both brackets and records outcomes of undecided matches.
// Standings are only recomputed by LoadData.
func (p *Provider) UpdateMatches(ctx context.Context) []*model.Match {
	var changed []*model.Match
	for _, spec := range bracketSpecs {
		schedule, err := p.fetchBracket(ctx, spec.key)
		if err != nil {
			p.logger.Warn("Failed to poll bracket", zap.String("bracket", spec.key), zap.Error(err))
			continue
		}
		bracketID := provider.BracketID(p.LeagueID(), spec.key)
		count := 0
		for _, week := range schedule {
			for _, rm := range week.Matches {
				count++
				m, ok := p.Match(p.matchID(bracketID, count))
				if !ok || m.Winner() != "" {
					continue
				}
				if m.SetWinner(winner(rm)) {
					changed = append(changed, m)
				}
			}
		}
	}
	return changed
}

func (p *Provider) fetchBracket(ctx context.Context, key string) ([]rawWeek, error) {
	target := fmt.Sprintf("%s/bracket/%s/%s/%s", p.cfg.BaseURL, season, url.PathEscape(p.cfg.Division), key)
	body, err := p.fetcher.FetchJSON(ctx, target, fetcher.Options{ForceLookup: true})
	if err != nil {
		return nil, err
	}
	var resp bracketResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", target, err)
	}
	return resp.Schedule, nil
}

// matchID numbers matches by their position in the bracket; upstream assigns none.
func (p *Provider) matchID(bracketID string, count int) string {
	return fmt.Sprintf("%s-%s-%d", p.LeagueID(), bracketID, count)
}

func (p *Provider) parseSchedule(schedule []rawWeek, b *model.Bracket, teams *teamSet, gen uint64, now time.Time) {
	var standings []*model.TeamStanding
	byTeam := make(map[string]*model.TeamStanding)
	count := 0

	for _, week := range schedule {
		for _, rm := range week.Matches {
			count++
			data := model.MatchData{
				ID:        p.matchID(b.ID, count),
				BracketID: b.ID,
				Blue:      rm.Team1.teamID(),
				Red:       rm.Team2.teamID(),
			}
			if sec := rm.TimestampSec.Int64(); sec > 0 {
				data.Time = time.Unix(sec, 0).UTC()
			}
			for _, g := range rm.Games {
				if g.Ref == nil {
					continue
				}
				data.Games = append(data.Games, model.GameInstance{
					ID:    g.Ref.GameID.String(),
					Realm: p.cfg.Realm,
					Hash:  g.Ref.TournamentCode,
				})
			}

			for _, side := range []rawSide{rm.Team1, rm.Team2} {
				id := side.teamID()
				if id == "" {
					continue
				}
				team := teams.get(id, side.Ref.DisplayName, p.LeagueID())
				s, ok := byTeam[id]
				if !ok {
					s = &model.TeamStanding{Team: team}
					byTeam[id] = s
					standings = append(standings, s)
				}
				switch side.Outcome {
				case "":
				case outcomeVictory:
					data.Winner = id
					s.Wins++
					s.Points += pointsVictory
				case outcomeTie:
					data.Winner = model.Tie
					s.Ties++
					s.Points += pointsTie
				default:
					s.Losses++
				}
			}
			b.Schedule = append(b.Schedule, model.NewMatch(data, p.Epoch(), gen, now))
		}
	}

	b.Standings = rank(standings)
}

// rank orders standings by points, highest first. Equal points share a rank, and the
// rank after a shared group skips ahead by the group size.
func rank(standings []*model.TeamStanding) []model.TeamStanding {
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Points > standings[j].Points
	})
	out := make([]model.TeamStanding, len(standings))
	r, cur := 1, -1
	for i, s := range standings {
		if s.Points != cur {
			r, cur = i+1, s.Points
		}
		s.Rank = r
		out[i] = *s
	}
	return out
}

func (p *Provider) loadPlayers(ctx context.Context, team *model.Team) {
	target := fmt.Sprintf("%s/team/%s/%s/%s", p.cfg.BaseURL, season, url.PathEscape(p.cfg.Division), url.PathEscape(team.ID))
	body, err := p.fetcher.FetchJSON(ctx, target, fetcher.Options{})
	if err != nil {
		p.logger.Warn("Failed to fetch team players", zap.String("team", team.ID), zap.Error(err))
		return
	}
	var resp teamResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		p.logger.Warn("Failed to decode team players", zap.String("team", team.ID), zap.Error(err))
		return
	}
	for _, pl := range resp.Players {
		team.Players = append(team.Players, model.Player{
			SummonerName: pl.SummonerName,
			TeamID:       team.ID,
			Position:     model.PositionUnknown,
		})
	}
}

// winner reads the outcome fields; a victory names its team, a tie names Tie.
func winner(rm rawMatch) string {
	w := ""
	for _, side := range []rawSide{rm.Team1, rm.Team2} {
		id := side.teamID()
		if id == "" {
			continue
		}
		switch side.Outcome {
		case outcomeVictory:
			w = id
		case outcomeTie:
			w = model.Tie
		}
	}
	return w
}
