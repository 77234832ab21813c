package model

import "time"

const (
	// TBD marks a match participant that is not decided yet.
	TBD = "TBD"
	// Tie is the winner of a drawn match.
	Tie = "TIE"
)

// FarFuture is the scheduled time of matches the upstream has not scheduled yet.
// It sorts after every real time.
var FarFuture = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

// Position is a player's in-game role.
type Position string

const (
	PositionTop     Position = "Top"
	PositionJungle  Position = "Jungle"
	PositionMid     Position = "Mid"
	PositionADC     Position = "ADC"
	PositionSupport Position = "Support"
	PositionUnknown Position = "Unknown"
)

// Player is a rostered player.
type Player struct {
	SummonerName string   `json:"summoner_name"`
	TeamID       string   `json:"team_id"`
	Position     Position `json:"position"`
	IsSubstitute bool     `json:"is_substitute"`
}

// Team is a participant of a league. ID is a short code unique within one load cycle.
type Team struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	LeagueID string   `json:"league_id"`
	Players  []Player `json:"players,omitempty"`
}

// GameInstance is one game of a match series. Hash is empty until the upstream
// publishes the verification hash, which only happens for games actually played.
type GameInstance struct {
	ID    string `json:"id"`
	Realm string `json:"realm"`
	Hash  string `json:"hash,omitempty"`
}

// TeamStanding is one row of a bracket's standings. Teams with equal records share a rank.
type TeamStanding struct {
	Rank   int   `json:"rank"`
	Team   *Team `json:"team"`
	Wins   int   `json:"wins"`
	Losses int   `json:"losses"`
	Ties   int   `json:"ties"`
	Points int   `json:"points"`
}

// Bracket is a sub-division of a league's tournament, such as the regular season or playoffs.
// ID is globally unique: "<league_id>-<bracket name>".
type Bracket struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	LeagueID   string         `json:"league_id"`
	IsPlayoffs bool           `json:"is_playoffs"`
	Standings  []TeamStanding `json:"standings"`
	Schedule   []*Match       `json:"-"`
}

// HasTies reports whether any team in the bracket has drawn a match.
func (b *Bracket) HasTies() bool {
	for _, s := range b.Standings {
		if s.Ties != 0 {
			return true
		}
	}
	return false
}
