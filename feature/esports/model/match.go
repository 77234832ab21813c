package model

import (
	"sync"
	"sync/atomic"
	"time"
)

// Epoch is the live load generation of a provider. Matches built by an older
// generation are stale and reject mutations.
type Epoch struct {
	current atomic.Uint64
}

// Current returns the live generation.
func (e *Epoch) Current() uint64 {
	return e.current.Load()
}

// Next returns the generation the next load will publish.
func (e *Epoch) Next() uint64 {
	return e.current.Load() + 1
}

// Set publishes generation gen, superseding every match built before it.
func (e *Epoch) Set(gen uint64) {
	e.current.Store(gen)
}

// MatchData is the plain value form of a match.
type MatchData struct {
	ID        string         `json:"id"`
	BracketID string         `json:"bracket_id"`
	Blue      string         `json:"blue"`
	Red       string         `json:"red"`
	Time      time.Time      `json:"time"`
	Games     []GameInstance `json:"games"`
	Winner    string         `json:"winner,omitempty"`
}

// Match is a shared handle to one best-of-N contest. The owning provider, its brackets
// and the engine's indexes all reference the same handle, so a result recorded by a poll
// is visible everywhere without re-indexing. Only SetTeams and SetWinner mutate it.
type Match struct {
	mu        sync.RWMutex
	data      MatchData
	announced bool

	epoch *Epoch
	gen   uint64
}

// NewMatch creates a handle owned by generation gen of epoch. A nil epoch never goes stale.
// Matches scheduled before now are considered already announced.
func NewMatch(data MatchData, epoch *Epoch, gen uint64, now time.Time) *Match {
	if data.Time.IsZero() {
		data.Time = FarFuture
	}
	if data.Blue == "" {
		data.Blue = TBD
	}
	if data.Red == "" {
		data.Red = TBD
	}
	data.Games = append([]GameInstance(nil), data.Games...)
	return &Match{
		data:      data,
		announced: now.After(data.Time),
		epoch:     epoch,
		gen:       gen,
	}
}

// ID returns the provider-assigned match id.
func (m *Match) ID() string { return m.data.ID }

// BracketID returns the owning bracket id.
func (m *Match) BracketID() string { return m.data.BracketID }

// Time returns the scheduled time, FarFuture when unscheduled.
func (m *Match) Time() time.Time { return m.data.Time }

// Scheduled reports whether the match has a real scheduled time.
func (m *Match) Scheduled() bool { return !m.data.Time.Equal(FarFuture) }

// Games returns a copy of the games.
func (m *Match) Games() []GameInstance {
	return append([]GameInstance(nil), m.data.Games...)
}

// NumGames returns the number of known games.
func (m *Match) NumGames() int { return len(m.data.Games) }

// Blue returns the blue side team id or TBD.
func (m *Match) Blue() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.Blue
}

// Red returns the red side team id or TBD.
func (m *Match) Red() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.Red
}

// Winner returns the winning team id, Tie, or "" while undecided.
func (m *Match) Winner() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.Winner
}

// Data returns a consistent copy of the match.
func (m *Match) Data() MatchData {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d := m.data
	d.Games = append([]GameInstance(nil), m.data.Games...)
	return d
}

// Involves reports whether teamID plays in the match.
func (m *Match) Involves(teamID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.Blue == teamID || m.data.Red == teamID
}

// Generation returns the load generation that built the match.
func (m *Match) Generation() uint64 { return m.gen }

// Stale reports whether a newer load has superseded the match.
func (m *Match) Stale() bool {
	return m.epoch != nil && m.epoch.Current() != m.gen
}

// SetTeams fills in participants while at least one side is still TBD.
// It reports whether the match changed; stale matches are never changed.
func (m *Match) SetTeams(blue, red string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Stale() {
		return false
	}
	if m.data.Blue != TBD && m.data.Red != TBD {
		return false
	}
	if m.data.Blue == blue && m.data.Red == red {
		return false
	}
	m.data.Blue, m.data.Red = blue, red
	return true
}

// SetWinner records the result of an undecided match.
// It reports whether the match changed; stale or decided matches are never changed.
func (m *Match) SetWinner(winner string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Stale() || winner == "" || m.data.Winner != "" {
		return false
	}
	m.data.Winner = winner
	return true
}

// Announced reports whether the match was already announced.
func (m *Match) Announced() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.announced
}

// MarkAnnounced records that the match has been announced.
func (m *Match) MarkAnnounced() {
	m.mu.Lock()
	m.announced = true
	m.mu.Unlock()
}
