package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"esports-tracker/feature/esports/model"
	"esports-tracker/feature/esports/nameindex"
	"esports-tracker/feature/esports/provider"
	"esports-tracker/feature/esports/stats"

	"go.uber.org/zap"
)

const (
	// QualifierAll selects every league and team.
	QualifierAll = "All"
	// QualifierNone labels an empty schedule.
	QualifierNone = "No"
	// NoGamesScheduled is the schedule of a qualifier without upcoming matches.
	NoGamesScheduled = "No games scheduled."
	// DefaultLivestreamLink is shown for live matches when no stream is known.
	DefaultLivestreamLink = "https://watch.lolesports.com"
	// DefaultLimit caps schedule and result listings.
	DefaultLimit = 5

	topChampLimit = 5
	timeLayout    = "Mon 01/02 03:04PM MST"
)

// ChampRate is a champion's tally over a region.
type ChampRate struct {
	stats.Counters
	NumGames int `json:"num_games"`
}

// PlayerChampStats is a player's per champion tally.
type PlayerChampStats struct {
	Champs   map[string]stats.Counters `json:"champs"`
	NumGames stats.Counters            `json:"num_games"`
}

// ChampCount pairs a champion with its tally.
type ChampCount struct {
	Name string `json:"name"`
	stats.Counters
}

// qualifier resolves query in tiers across teams and leagues: an exact id or alias in
// either index beats any fuzzy match, and a team wins only within the same tier. The
// second result reports a team.
func (s *snapshot) qualifier(query string) (string, bool) {
	if query == "" || strings.EqualFold(query, QualifierAll) {
		return QualifierAll, false
	}
	if t, err := s.teams.LookupExact(query); err == nil {
		return t.ID, true
	}
	if p, err := s.leagueIdx.LookupExact(query); err == nil {
		return p.LeagueID(), false
	}
	if t, err := s.teams.Lookup(query); err == nil {
		return t.ID, true
	}
	if p, err := s.leagueIdx.Lookup(query); err == nil {
		return p.LeagueID(), false
	}
	return QualifierAll, false
}

// region resolves a league alias to its id; anything else, such as "all", passes through.
func (s *snapshot) region(query string) string {
	if strings.EqualFold(query, stats.AllRegions) {
		return stats.AllRegions
	}
	if p, err := s.leagueIdx.Lookup(query); err == nil {
		return p.LeagueID()
	}
	return query
}

func (s *snapshot) leagueOf(m *model.Match) (string, bool) {
	b, ok := s.brackets[m.BracketID()]
	if !ok {
		return "", false
	}
	return b.LeagueID, b.IsPlayoffs
}

func matchesQualifier(q, league string, m *model.Match) bool {
	return q == QualifierAll || q == league || m.Involves(q)
}

// GetLivestreamLinks maps match ids to stream links. No upstream publishes links, so it
// is always empty.
func (e *Engine) GetLivestreamLinks() map[string]string {
	return map[string]string{}
}

// GetSchedule lists up to limit upcoming or live matches of the team or league named by
// qualifier, with the label the qualifier resolved to.
func (e *Engine) GetSchedule(qualifier string, includePlayoffs bool, limit int) ([]string, string) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	s := e.current()
	q, _ := s.qualifier(qualifier)
	now := e.opts.Now()
	links := e.GetLivestreamLinks()

	var out []string
	for _, m := range s.schedule {
		league, playoffs := s.leagueOf(m)
		if !matchesQualifier(q, league, m) || m.Winner() != "" {
			continue
		}
		if playoffs && !includePlayoffs {
			continue
		}
		// A match stays listed for an hour per game past its start.
		if m.Scheduled() && !m.Time().Add(time.Duration(m.NumGames())*time.Hour).After(now) {
			continue
		}

		var when string
		if m.Time().After(now) {
			if m.Scheduled() {
				when = m.Time().In(e.opts.Location).Format(timeLayout)
			} else {
				when = model.TBD
			}
			if link, ok := links[m.ID()]; ok {
				when += " - " + link
			}
		} else {
			link := links[m.ID()]
			if link == "" {
				link = e.opts.FallbackLivestreamLink
			}
			when = "LIVE - " + link
		}
		bestOf := ""
		if n := m.NumGames(); n > 0 {
			bestOf = fmt.Sprintf("Bo%d - ", n)
		}
		out = append(out, fmt.Sprintf("%-3s v %-3s: %s%s", m.Blue(), m.Red(), bestOf, when))
		if len(out) >= limit {
			break
		}
	}

	if len(out) == 0 {
		return []string{NoGamesScheduled}, QualifierNone
	}
	return out, q
}

// GetResults lists up to limit decided matches of the team or league named by
// qualifier, newest first.
func (e *Engine) GetResults(qualifier string, limit int) ([]string, string) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	s := e.current()
	q, isTeam := s.qualifier(qualifier)

	out := []string{}
	for i := len(s.schedule) - 1; i >= 0 && len(out) < limit; i-- {
		m := s.schedule[i]
		winner := m.Winner()
		league, _ := s.leagueOf(m)
		if winner == "" || !matchesQualifier(q, league, m) {
			continue
		}

		var msg string
		switch {
		case isTeam && winner == model.Tie:
			msg = "Tie"
		case isTeam && winner == q:
			msg = "Won!"
		case isTeam:
			msg = "Lost"
		case winner == model.Tie:
			msg = model.Tie + " :^)"
		default:
			msg = fmt.Sprintf("%-3s wins!", winner)
		}
		out = append(out, fmt.Sprintf("%-3s v %-3s: %s", m.Blue(), m.Red(), msg))
	}
	return out, q
}

// GetStandings renders the standings of every bracket of league whose name or id
// contains bracket. A ties column is shown only for brackets with a drawn match.
func (e *Engine) GetStandings(league, bracket string) ([]string, error) {
	if !e.IsReady() {
		return nil, ErrNotReady
	}
	s := e.current()
	p, err := s.leagueIdx.Lookup(league)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve league %q: %w", league, err)
	}

	out := []string{}
	for _, b := range s.byLeague[p.LeagueID()] {
		if !strings.Contains(b.Name, bracket) && !strings.Contains(b.ID, bracket) {
			continue
		}
		rows := append([]model.TeamStanding(nil), b.Standings...)
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Rank < rows[j].Rank })
		ties := b.HasTies()

		columns := "W-L"
		if ties {
			columns = "W-L-D, Pts"
		}
		out = append(out, fmt.Sprintf("%s-%s Standings (%s)", p.Name(), b.Name, columns))
		for _, r := range rows {
			record := fmt.Sprintf("%d-%d", r.Wins, r.Losses)
			if ties {
				record = fmt.Sprintf("%d-%d-%d, %d", r.Wins, r.Losses, r.Ties, r.Points)
			}
			out = append(out, fmt.Sprintf("%2d: %-3s (%s)", r.Rank, r.Team.ID, record))
		}
	}
	return out, nil
}

// GetChampPickBanRate returns the display name of the champion named by champ and its
// tally over region.
func (e *Engine) GetChampPickBanRate(region, champ string) (string, ChampRate, error) {
	if !e.IsReady() {
		return "", ChampRate{}, ErrNotReady
	}
	s := e.current()
	region = s.region(region)
	id, ok := s.champs.ChampID(champ)
	if !ok {
		e.logger.Info("Query does not map to a known champion", zap.String("champion", champ))
		return "", ChampRate{}, fmt.Errorf("unknown champion %q: %w", champ, nameindex.ErrNotFound)
	}
	name, _ := s.champs.NameFromID(id)
	return name, ChampRate{
		Counters: s.stats.ChampIn(id, region),
		NumGames: s.stats.GamesIn(region),
	}, nil
}

// GetPlayerChampStats returns the display name and per champion tally of the player
// named by query. Ambiguous queries are not resolved.
func (e *Engine) GetPlayerChampStats(query string) (string, PlayerChampStats, error) {
	if !e.IsReady() {
		return "", PlayerChampStats{}, ErrNotReady
	}
	p, err := e.current().players.Lookup(query)
	if err != nil {
		e.logger.Info("Query is ambiguous or unknown", zap.String("player", query), zap.Error(err))
		return "", PlayerChampStats{}, fmt.Errorf("failed to resolve player %q: %w", query, err)
	}
	out := PlayerChampStats{Champs: make(map[string]stats.Counters, len(p.Champs)), NumGames: p.Games}
	for name, c := range p.Champs {
		out.Champs[name] = *c
	}
	return p.Name, out, nil
}

// GetTopPickBanChamps returns the number of games in region and its top champions by
// key. Champions picked in fewer than 5% of the games are dropped, and picks break ties.
func (e *Engine) GetTopPickBanChamps(region string, key stats.SortKey, descending bool) (int, []ChampCount) {
	s := e.current()
	region = s.region(region)
	numGames := s.stats.GamesIn(region)
	floor := float64(numGames) / 20.0

	champs := []ChampCount{}
	for _, id := range provider.SortedKeys(s.stats.Champs) {
		name, ok := s.champs.NameFromID(id)
		if !ok {
			e.logger.Warn("Skipping unknown champion id", zap.String("champion", id))
			continue
		}
		c := s.stats.ChampIn(id, region)
		if float64(c.Picks) < floor {
			continue
		}
		champs = append(champs, ChampCount{Name: name, Counters: c})
	}

	sort.SliceStable(champs, func(i, j int) bool { return champs[i].Picks > champs[j].Picks })
	sort.SliceStable(champs, func(i, j int) bool {
		a, b := key.Value(champs[i].Counters), key.Value(champs[j].Counters)
		if descending {
			return a > b
		}
		return a < b
	})
	if len(champs) > topChampLimit {
		champs = champs[:topChampLimit]
	}
	return numGames, champs
}

// GetUniqueChampCount returns how many distinct champions were picked or banned in
// region and the number of games there.
func (e *Engine) GetUniqueChampCount(region string) (int, int) {
	s := e.current()
	region = s.region(region)
	unique := make(map[string]struct{})
	for _, id := range s.stats.ChampIDsIn(region) {
		name, ok := s.champs.NameFromID(id)
		if !ok {
			e.logger.Warn("Skipping unknown champion id", zap.String("champion", id))
			continue
		}
		unique[name] = struct{}{}
	}
	return len(unique), s.stats.GamesIn(region)
}
