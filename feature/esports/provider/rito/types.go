package rito

import "esports-tracker/core/utils"

// leagueResponse is the league descriptor served by v1/leagues.
type leagueResponse struct {
	Leagues     []rawLeague     `json:"leagues"`
	Teams       []rawTeam       `json:"teams"`
	Tournaments []rawTournament `json:"highlanderTournaments"`
	Records     []rawRecord     `json:"highlanderRecords"`
}

type rawLeague struct {
	ID   utils.FlexString `json:"id"`
	Slug string           `json:"slug"`
}

type rawTeam struct {
	ID      utils.FlexString   `json:"id"`
	Slug    string             `json:"slug"`
	Name    string             `json:"name"`
	Acronym string             `json:"acronym"`
	Subs    []utils.FlexString `json:"subs"`
}

func (t rawTeam) isSub(playerID utils.FlexString) bool {
	for _, s := range t.Subs {
		if s == playerID {
			return true
		}
	}
	return false
}

type rawTournament struct {
	ID        string                `json:"id"`
	Title     string                `json:"title"`
	StartDate string                `json:"startDate"`
	EndDate   string                `json:"endDate"`
	Rosters   map[string]rawRoster  `json:"rosters"`
	Brackets  map[string]rawBracket `json:"brackets"`
}

// rawRoster is a team's entry in one tournament. All-Star rosters have no team.
type rawRoster struct {
	Team utils.FlexString `json:"team"`
	Name string           `json:"name"`
}

type rawBracket struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Standings *rawStandings       `json:"standings"`
	Matches   map[string]rawMatch `json:"matches"`
}

// rawStandings lists result groups ordered by rank; a group holds every roster sharing it.
type rawStandings struct {
	Result [][]rawRosterRef `json:"result"`
}

type rawRosterRef struct {
	Roster string `json:"roster"`
}

type rawMatch struct {
	ID        string             `json:"id"`
	Input     []rawRosterRef     `json:"input"`
	Games     map[string]rawGame `json:"games"`
	Standings *rawStandings      `json:"standings"`
}

// rawGame carries two ids: GameID addresses the stats service, ID resolves the hash.
type rawGame struct {
	ID        string           `json:"id"`
	GameID    utils.FlexString `json:"gameId"`
	GameRealm string           `json:"gameRealm"`
}

type rawRecord struct {
	Tournament string `json:"tournament"`
	Bracket    string `json:"bracket"`
	Roster     string `json:"roster"`
	Wins       int    `json:"wins"`
	Losses     int    `json:"losses"`
	Ties       int    `json:"ties"`
	Score      int    `json:"score"`
}

type teamResponse struct {
	Players []rawPlayer `json:"players"`
}

type rawPlayer struct {
	ID       utils.FlexString `json:"id"`
	Name     string           `json:"name"`
	RoleSlug string           `json:"roleSlug"`
}

type matchDetailsResponse struct {
	GameIDMappings []struct {
		ID       string `json:"id"`
		GameHash string `json:"gameHash"`
	} `json:"gameIdMappings"`
}

type scheduleItemsResponse struct {
	ScheduleItems []struct {
		Match         string `json:"match"`
		ScheduledTime string `json:"scheduledTime"`
	} `json:"scheduleItems"`
}
