package stats

import (
	"fmt"
	"sort"
	"strings"
)

// AllRegions selects every league in region-filtered queries.
const AllRegions = "all"

// Counters tallies one entity's games.
type Counters struct {
	Picks int `json:"picks"`
	Bans  int `json:"bans"`
	Wins  int `json:"wins"`
}

// Add accumulates o into c.
func (c *Counters) Add(o Counters) {
	c.Picks += o.Picks
	c.Bans += o.Bans
	c.Wins += o.Wins
}

// WinRate returns wins per pick, 0 without picks.
func (c Counters) WinRate() float64 {
	if c.Picks == 0 {
		return 0
	}
	return float64(c.Wins) / float64(c.Picks)
}

// Player is the tally of one player, keyed by champion display name.
type Player struct {
	// Name is the display name as last reported upstream.
	Name   string               `json:"name"`
	Champs map[string]*Counters `json:"champs"`
	// Games counts every pick and win of the player regardless of champion.
	Games Counters `json:"num_games"`
}

func newPlayer(name string) *Player {
	return &Player{Name: name, Champs: make(map[string]*Counters)}
}

// Snapshot holds the statistics of one reload. It is built once and only read afterwards.
type Snapshot struct {
	// Champs maps champion id to league id to counters.
	Champs map[string]map[string]*Counters
	// Players maps canonical player keys to their tallies.
	Players map[string]*Player
	// NumGames counts scraped games per league.
	NumGames map[string]int
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Champs:   make(map[string]map[string]*Counters),
		Players:  make(map[string]*Player),
		NumGames: make(map[string]int),
	}
}

func (s *Snapshot) champ(id, league string) *Counters {
	byLeague, ok := s.Champs[id]
	if !ok {
		byLeague = make(map[string]*Counters)
		s.Champs[id] = byLeague
	}
	c, ok := byLeague[league]
	if !ok {
		c = &Counters{}
		byLeague[league] = c
	}
	return c
}

func (p *Player) champ(name string) *Counters {
	c, ok := p.Champs[name]
	if !ok {
		c = &Counters{}
		p.Champs[name] = c
	}
	return c
}

// Merge accumulates o into s. Player display names already present in s win.
func (s *Snapshot) Merge(o *Snapshot) {
	for id, byLeague := range o.Champs {
		for league, c := range byLeague {
			s.champ(id, league).Add(*c)
		}
	}
	for key, op := range o.Players {
		p, ok := s.Players[key]
		if !ok {
			p = newPlayer(op.Name)
			s.Players[key] = p
		}
		for name, c := range op.Champs {
			p.champ(name).Add(*c)
		}
		p.Games.Add(op.Games)
	}
	for league, n := range o.NumGames {
		s.NumGames[league] += n
	}
}

func inRegion(region, league string) bool {
	return strings.EqualFold(region, AllRegions) || region == league
}

// GamesIn returns the number of games scraped in region.
func (s *Snapshot) GamesIn(region string) int {
	total := 0
	for league, n := range s.NumGames {
		if inRegion(region, league) {
			total += n
		}
	}
	return total
}

// ChampIn sums a champion's counters over region.
func (s *Snapshot) ChampIn(champID, region string) Counters {
	var total Counters
	for league, c := range s.Champs[champID] {
		if inRegion(region, league) {
			total.Add(*c)
		}
	}
	return total
}

// ChampIDsIn returns, sorted, the ids of champions with any activity in region.
func (s *Snapshot) ChampIDsIn(region string) []string {
	var ids []string
	for id, byLeague := range s.Champs {
		for league := range byLeague {
			if inRegion(region, league) {
				ids = append(ids, id)
				break
			}
		}
	}
	sort.Strings(ids)
	return ids
}

// SortKey names the ranking of top champion queries.
type SortKey string

const (
	SortPicks    SortKey = "picks"
	SortBans     SortKey = "bans"
	SortPresence SortKey = "presence"
	SortWins     SortKey = "wins"
	SortWinRate  SortKey = "winrate"
)

// ParseSortKey validates a sort key name. Empty means SortPicks.
func ParseSortKey(name string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(name)); k {
	case "":
		return SortPicks, nil
	case SortPicks, SortBans, SortPresence, SortWins, SortWinRate:
		return k, nil
	default:
		return "", fmt.Errorf("unknown sort key %q", name)
	}
}

// Value extracts the ranked quantity from c.
func (k SortKey) Value(c Counters) float64 {
	switch k {
	case SortBans:
		return float64(c.Bans)
	case SortPresence:
		return float64(c.Picks + c.Bans)
	case SortWins:
		return float64(c.Wins)
	case SortWinRate:
		return c.WinRate()
	default:
		return float64(c.Picks)
	}
}
