package engine

import (
	"time"

	"esports-tracker/feature/esports/model"
	"esports-tracker/feature/esports/provider"
)

// Teams returns every team of the current snapshot, ordered by id.
func (e *Engine) Teams() []*model.Team {
	s := e.current()
	keys := s.teams.Keys()
	out := make([]*model.Team, 0, len(keys))
	for _, k := range keys {
		t, _ := s.teams.Get(k)
		out = append(out, t)
	}
	return out
}

// Team resolves a team by id, name or a fragment of either.
func (e *Engine) Team(query string) (*model.Team, error) {
	return e.current().teams.Lookup(query)
}

// League resolves a league by id, name or alias.
func (e *Engine) League(query string) (provider.Provider, error) {
	return e.current().leagueIdx.Lookup(query)
}

// Leagues returns the providers in configuration order.
func (e *Engine) Leagues() []provider.Provider {
	return append([]provider.Provider(nil), e.current().leagues...)
}

// Schedule returns every match ordered by scheduled time, unscheduled matches last.
func (e *Engine) Schedule() []*model.Match {
	return append([]*model.Match(nil), e.current().schedule...)
}

// Matches returns the matches of the current snapshot by id.
func (e *Engine) Matches() map[string]*model.Match {
	s := e.current()
	out := make(map[string]*model.Match, len(s.matches))
	for id, m := range s.matches {
		out[id] = m
	}
	return out
}

// Brackets returns the brackets of the current snapshot by id.
func (e *Engine) Brackets() map[string]*model.Bracket {
	s := e.current()
	out := make(map[string]*model.Bracket, len(s.brackets))
	for id, b := range s.brackets {
		out[id] = b
	}
	return out
}

// Generation counts published reloads.
func (e *Engine) Generation() uint64 {
	return e.current().generation
}

// LoadedAt returns when the current snapshot was assembled; zero before the first reload.
func (e *Engine) LoadedAt() time.Time {
	return e.current().loadedAt
}

// Location is the zone schedule times are rendered in.
func (e *Engine) Location() *time.Location {
	return e.opts.Location
}
