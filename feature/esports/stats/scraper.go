package stats

import (
	"context"
	"fmt"

	"esports-tracker/core/fetcher"
	"esports-tracker/core/utils"
	"esports-tracker/feature/esports/model"
	"esports-tracker/feature/esports/nameindex"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// GameStatsURL is the per game stats endpoint: realm, game id, hash.
const GameStatsURL = "https://acs.leagueoflegends.com/v1/stats/game/%s/%s?gameHash=%s"

const (
	anonymousKey  = "hypebot"
	anonymousName = "HypeBot"
	winMarker     = "Win"
)

// ChampionNamer maps champion ids to display names.
type ChampionNamer interface {
	NameFromID(id string) (string, bool)
}

type gameStats struct {
	ParticipantIdentities []struct {
		ParticipantID utils.FlexString `json:"participantId"`
		Player        struct {
			SummonerName string `json:"summonerName"`
		} `json:"player"`
	} `json:"participantIdentities"`
	Teams []struct {
		TeamID utils.FlexString `json:"teamId"`
		Win    string           `json:"win"`
		Bans   []struct {
			ChampionID utils.FlexString `json:"championId"`
		} `json:"bans"`
	} `json:"teams"`
	Participants []struct {
		ParticipantID utils.FlexString `json:"participantId"`
		TeamID        utils.FlexString `json:"teamId"`
		ChampionID    utils.FlexString `json:"championId"`
	} `json:"participants"`
}

// Scraper tallies pick, ban and win data of completed matches.
type Scraper struct {
	fetcher fetcher.Fetcher
	champs  ChampionNamer
	logger  *zap.Logger
	url     string
}

// NewScraper creates a scraper reading game stats through f.
func NewScraper(f fetcher.Fetcher, champs ChampionNamer, logger *zap.Logger) *Scraper {
	return &Scraper{fetcher: f, champs: champs, logger: logger, url: GameStatsURL}
}

// ScrapeMatch adds every played game of m to snap under leagueID. Games without a
// hash were never played and are skipped, as are games whose stats cannot be fetched.
func (s *Scraper) ScrapeMatch(ctx context.Context, leagueID string, m *model.Match, snap *Snapshot) {
	for _, g := range m.Games() {
		if g.Hash == "" {
			continue
		}
		stats, err := s.fetchGame(ctx, g)
		if err != nil {
			s.logger.Warn("Failed to fetch game stats",
				zap.String("match", m.ID()),
				zap.String("game", g.ID),
				zap.Error(err))
			continue
		}
		snap.NumGames[leagueID]++
		s.tally(leagueID, stats, snap)
	}
}

func (s *Scraper) fetchGame(ctx context.Context, g model.GameInstance) (*gameStats, error) {
	target := fmt.Sprintf(s.url, g.Realm, g.ID, g.Hash)
	body, err := s.fetcher.FetchJSON(ctx, target, fetcher.Options{UseStorage: true})
	if err != nil {
		return nil, err
	}
	var stats gameStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", target, err)
	}
	return &stats, nil
}

func (s *Scraper) tally(leagueID string, stats *gameStats, snap *Snapshot) {
	names := make(map[utils.FlexString]string, len(stats.ParticipantIdentities))
	for _, p := range stats.ParticipantIdentities {
		names[p.ParticipantID] = p.Player.SummonerName
	}

	var winningTeam utils.FlexString
	for _, team := range stats.Teams {
		if team.Win == winMarker {
			winningTeam = team.TeamID
		}
		for _, ban := range team.Bans {
			champID := ban.ChampionID.String()
			if !validChampID(ban.ChampionID) {
				s.logger.Warn("Skipping ban without champion", zap.String("team", team.TeamID.String()), zap.String("champion", champID))
				continue
			}
			snap.champ(champID, leagueID).Bans++
		}
	}

	for _, p := range stats.Participants {
		champID := p.ChampionID.String()
		if !validChampID(p.ChampionID) {
			s.logger.Warn("Skipping participant without champion", zap.String("participant", p.ParticipantID.String()))
			continue
		}
		champName, ok := s.champs.NameFromID(champID)
		if !ok {
			s.logger.Warn("Unknown champion id", zap.String("champion", champID))
			champName = champID
		}

		name := names[p.ParticipantID]
		if name == "" {
			name = anonymousName
		}
		key := nameindex.Canonicalize(name)
		if key == "" {
			key = anonymousKey
		}
		player, ok := snap.Players[key]
		if !ok {
			player = newPlayer(name)
			snap.Players[key] = player
		}
		player.Name = name

		champ := snap.champ(champID, leagueID)
		pc := player.champ(champName)
		if winningTeam != "" && p.TeamID == winningTeam {
			champ.Wins++
			pc.Wins++
			player.Games.Wins++
		}
		champ.Picks++
		pc.Picks++
		player.Games.Picks++
	}
}

// validChampID reports whether id is a positive champion number. Missing bans are sent as -1.
func validChampID(id utils.FlexString) bool {
	return id.Int64() > 0
}
