package grumble

import "esports-tracker/core/utils"

type bracketResponse struct {
	Schedule []rawWeek `json:"schedule"`
}

type rawWeek struct {
	Matches []rawMatch `json:"matches"`
}

type rawMatch struct {
	Team1        rawSide          `json:"team1"`
	Team2        rawSide          `json:"team2"`
	TimestampSec utils.FlexString `json:"timestampSec"`
	Games        []rawGame        `json:"games"`
}

// rawSide is one participant. Ref is absent until the slot is filled; Outcome is empty
// until the match is played.
type rawSide struct {
	Ref *struct {
		ID          utils.FlexString `json:"id"`
		DisplayName string           `json:"displayName"`
	} `json:"ref"`
	Outcome string `json:"outcome"`
}

func (s rawSide) teamID() string {
	if s.Ref == nil {
		return ""
	}
	return s.Ref.ID.String()
}

type rawGame struct {
	Ref *struct {
		GameID         utils.FlexString `json:"gameId"`
		TournamentCode string           `json:"tournamentCode"`
	} `json:"ref"`
}

type teamResponse struct {
	Players []struct {
		SummonerName string `json:"summonerName"`
	} `json:"players"`
}
