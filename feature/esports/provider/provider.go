package provider

import (
	"context"
	"sort"
	"sync"

	"esports-tracker/feature/esports/model"
)

// Kind enumerates the supported upstream variants.
type Kind string

const (
	KindRito    Kind = "rito"
	KindGrumble Kind = "grumble"
)

// Provider scrapes one upstream tournament source into the entity model.
// The set of implementations is closed: every variant embeds *Base.
type Provider interface {
	// Kind identifies the upstream variant.
	Kind() Kind
	// LeagueID returns the unique league abbreviation.
	LeagueID() string
	// Name returns the human readable league name.
	Name() string
	// Aliases returns alternate names for the league.
	Aliases() []string
	// StatsEnabled reports whether completed games feed the pick/ban statistics.
	StatsEnabled() bool
	// Teams returns the teams of the last successful load.
	Teams() []*model.Team
	// Brackets returns the brackets of the last successful load.
	Brackets() []*model.Bracket
	// LoadData builds the provider's next state from upstream and stages it. Nothing
	// changes for readers until Commit. On a league level failure it returns an error and
	// stages nothing.
	LoadData(ctx context.Context) error
	// Pending returns the staged state, or the published one when nothing is staged.
	Pending() State
	// Commit publishes the staged state, superseding every published match. It reports
	// whether anything was staged.
	Commit() bool
	// Discard drops the staged state.
	Discard()
	// UpdateMatches polls upstream for results and returns the matches it changed.
	UpdateMatches(ctx context.Context) []*model.Match

	sealed()
}

// State is the complete output of one load.
type State struct {
	Teams    []*model.Team
	Brackets []*model.Bracket
}

// Base holds the state shared by every provider variant. The mutex only guards swapping
// and reading the published state; network calls happen outside it.
type Base struct {
	kind         Kind
	statsEnabled bool
	epoch        model.Epoch

	mu       sync.RWMutex
	teams    []*model.Team
	brackets []*model.Bracket
	matches  map[string]*model.Match

	stageMu sync.Mutex
	staged  *staged
}

// staged is a loaded state waiting for Commit.
type staged struct {
	gen   uint64
	state State
}

// NewBase creates the shared state for a provider of kind.
func NewBase(kind Kind, statsEnabled bool) *Base {
	return &Base{
		kind:         kind,
		statsEnabled: statsEnabled,
		matches:      make(map[string]*model.Match),
	}
}

func (b *Base) sealed() {}

// Kind identifies the upstream variant.
func (b *Base) Kind() Kind { return b.kind }

// StatsEnabled reports whether completed games feed the statistics.
func (b *Base) StatsEnabled() bool { return b.statsEnabled }

// Teams returns the published teams.
func (b *Base) Teams() []*model.Team {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]*model.Team(nil), b.teams...)
}

// Brackets returns the published brackets.
func (b *Base) Brackets() []*model.Bracket {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]*model.Bracket(nil), b.brackets...)
}

// Match returns the live handle for id.
func (b *Base) Match(id string) (*model.Match, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	m, ok := b.matches[id]
	return m, ok
}

// Epoch returns the generation counter handed to new matches.
func (b *Base) Epoch() *model.Epoch { return &b.epoch }

// Publish swaps in the state built for generation gen. Matches of earlier generations
// become stale.
func (b *Base) Publish(gen uint64, s State) {
	matches := make(map[string]*model.Match)
	for _, br := range s.Brackets {
		for _, m := range br.Schedule {
			matches[m.ID()] = m
		}
	}

	b.mu.Lock()
	b.teams = s.Teams
	b.brackets = s.Brackets
	b.matches = matches
	b.epoch.Set(gen)
	b.mu.Unlock()
}

// Stage holds s, built for generation gen, until Commit. A later Stage replaces it.
func (b *Base) Stage(gen uint64, s State) {
	b.stageMu.Lock()
	b.staged = &staged{gen: gen, state: s}
	b.stageMu.Unlock()
}

// Pending returns the staged state, or the published one when nothing is staged.
func (b *Base) Pending() State {
	b.stageMu.Lock()
	st := b.staged
	b.stageMu.Unlock()
	if st != nil {
		return State{
			Teams:    append([]*model.Team(nil), st.state.Teams...),
			Brackets: append([]*model.Bracket(nil), st.state.Brackets...),
		}
	}
	return State{Teams: b.Teams(), Brackets: b.Brackets()}
}

// Commit publishes the staged state.
func (b *Base) Commit() bool {
	b.stageMu.Lock()
	st := b.staged
	b.staged = nil
	b.stageMu.Unlock()
	if st == nil {
		return false
	}
	b.Publish(st.gen, st.state)
	return true
}

// Discard drops the staged state.
func (b *Base) Discard() {
	b.stageMu.Lock()
	b.staged = nil
	b.stageMu.Unlock()
}

// BracketID makes a bracket id unique across leagues.
func BracketID(leagueID, bracketName string) string {
	return leagueID + "-" + bracketName
}

// SortedKeys returns the keys of m in sorted order. Upstream objects keyed by id carry no
// meaningful order, so iteration over them is made deterministic.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
