package esports

// Config holds the league roster and the cadence of background cycles.
type Config struct {
	// GrumbleDivisions lists the grumble divisions to track.
	GrumbleDivisions []string `mapstructure:"grumble_divisions" default:"D1,D2"`
	// GrumbleRealm is the game realm of grumble games.
	GrumbleRealm string `mapstructure:"grumble_realm" default:"NA1"`
	// RitoLeagues lists lolesports leagues as REGION:slug[:alias|alias].
	RitoLeagues []string `mapstructure:"rito_leagues" default:"NA:na-lcs:North America,EU:lec:Europe,LCK:lck:LCK|Korea|KR,IN:worlds:International|Worlds"`
	// StatsEnabled feeds completed games of every league into the pick/ban statistics.
	StatsEnabled bool `mapstructure:"stats_enabled" default:"true"`
	// ChampionDataURL locates the Data Dragon champion list.
	ChampionDataURL string `mapstructure:"champion_data_url" default:"https://ddragon.leagueoflegends.com/cdn/8.24.1/data/en_US/champion.json"`
	// PlayerNicknames lists extra player aliases as alias:player.
	PlayerNicknames []string `mapstructure:"player_nicknames" default:""`
	// Timezone renders schedule times.
	Timezone string `mapstructure:"timezone" default:"America/Los_Angeles"`
	// ReloadSchedule is the cron spec of full reloads.
	ReloadSchedule string `mapstructure:"reload_schedule" default:"@every 6h"`
	// PollSchedule is the cron spec of match update polls.
	PollSchedule string `mapstructure:"poll_schedule" default:"@every 1m"`
	// FallbackLivestreamLink is shown for live matches without a known stream.
	FallbackLivestreamLink string `mapstructure:"fallback_livestream_link" default:"https://watch.lolesports.com"`
}
