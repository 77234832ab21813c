package esports

import (
	"fmt"
	"strings"
	"time"

	"esports-tracker/core/fetcher"
	"esports-tracker/feature/esports/engine"
	"esports-tracker/feature/esports/provider"
	"esports-tracker/feature/esports/provider/grumble"
	"esports-tracker/feature/esports/provider/rito"

	"go.uber.org/zap"
)

// ParseRitoLeagues parses REGION:slug[:alias|alias] entries. Blank entries are skipped.
func ParseRitoLeagues(entries []string, statsEnabled bool) ([]rito.Config, error) {
	var out []rito.Config
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
			return nil, fmt.Errorf("invalid rito league %q: want REGION:slug[:alias|alias]", entry)
		}
		cfg := rito.Config{
			Region:       strings.TrimSpace(parts[0]),
			Slug:         strings.TrimSpace(parts[1]),
			StatsEnabled: statsEnabled,
		}
		if len(parts) == 3 {
			for _, alias := range strings.Split(parts[2], "|") {
				if alias = strings.TrimSpace(alias); alias != "" {
					cfg.Aliases = append(cfg.Aliases, alias)
				}
			}
		}
		out = append(out, cfg)
	}
	return out, nil
}

// ParseNicknames parses alias:player entries into an alias to player map.
func ParseNicknames(entries []string) (map[string]string, error) {
	out := make(map[string]string, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		alias, player, ok := strings.Cut(entry, ":")
		alias, player = strings.TrimSpace(alias), strings.TrimSpace(player)
		if !ok || alias == "" || player == "" {
			return nil, fmt.Errorf("invalid player nickname %q: want alias:player", entry)
		}
		out[alias] = player
	}
	return out, nil
}

// BuildProviders creates the configured grumble divisions followed by the rito leagues.
func BuildProviders(cfg Config, f fetcher.Fetcher, logger *zap.Logger) ([]provider.Provider, error) {
	leagues, err := ParseRitoLeagues(cfg.RitoLeagues, cfg.StatsEnabled)
	if err != nil {
		return nil, err
	}

	var providers []provider.Provider
	seen := make(map[string]struct{})
	add := func(p provider.Provider) error {
		if _, dup := seen[p.LeagueID()]; dup {
			return fmt.Errorf("duplicate league id %s", p.LeagueID())
		}
		seen[p.LeagueID()] = struct{}{}
		providers = append(providers, p)
		return nil
	}

	for _, div := range cfg.GrumbleDivisions {
		if div = strings.TrimSpace(div); div == "" {
			continue
		}
		p := grumble.New(grumble.Config{
			Division:     div,
			Realm:        cfg.GrumbleRealm,
			StatsEnabled: cfg.StatsEnabled,
		}, f, logger)
		if err := add(p); err != nil {
			return nil, err
		}
	}
	for _, lc := range leagues {
		if err := add(rito.New(lc, f, logger)); err != nil {
			return nil, err
		}
	}
	return providers, nil
}

// NewEngine builds the providers described by cfg and an engine over them.
func NewEngine(cfg Config, f fetcher.Fetcher, logger *zap.Logger) (*engine.Engine, error) {
	providers, err := BuildProviders(cfg, f, logger)
	if err != nil {
		return nil, err
	}
	nicknames, err := ParseNicknames(cfg.PlayerNicknames)
	if err != nil {
		return nil, err
	}
	loc := time.UTC
	if cfg.Timezone != "" {
		if loc, err = time.LoadLocation(cfg.Timezone); err != nil {
			return nil, fmt.Errorf("failed to load timezone %s: %w", cfg.Timezone, err)
		}
	}
	return engine.New(providers, f, engine.Options{
		ChampionDataURL:        cfg.ChampionDataURL,
		Location:               loc,
		Nicknames:              nicknames,
		FallbackLivestreamLink: cfg.FallbackLivestreamLink,
	}, logger), nil
}
