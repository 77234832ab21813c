package engine

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"esports-tracker/core/fetcher"
	"esports-tracker/feature/esports/champion"
	"esports-tracker/feature/esports/model"
	"esports-tracker/feature/esports/nameindex"
	"esports-tracker/feature/esports/provider"
	"esports-tracker/feature/esports/stats"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNotReady is returned by queries issued before the first reload completed.
var ErrNotReady = errors.New("engine: esports data not loaded yet")

// Options tunes an Engine. Zero values fall back to sensible defaults.
type Options struct {
	// ChampionDataURL locates the Data Dragon champion.json; empty disables champion names.
	ChampionDataURL string
	// Location renders schedule times; nil means UTC.
	Location *time.Location
	// Nicknames maps player aliases to player names.
	Nicknames map[string]string
	// FallbackLivestreamLink is shown for live matches without a known stream.
	FallbackLivestreamLink string
	// Now overrides the clock.
	Now func() time.Time
}

// snapshot is everything one reload produced. It is never mutated after publication;
// only the matches it references change, through their own handles.
type snapshot struct {
	leagues    []provider.Provider
	teams      *nameindex.Index[*model.Team]
	leagueIdx  *nameindex.Index[provider.Provider]
	brackets   map[string]*model.Bracket
	// byLeague keeps each league's brackets in provider order.
	byLeague   map[string][]*model.Bracket
	matches    map[string]*model.Match
	schedule   []*model.Match
	champs     *champion.Catalog
	stats      *stats.Snapshot
	players    *nameindex.Index[*stats.Player]
	generation uint64
	loadedAt   time.Time
}

func emptySnapshot() *snapshot {
	return &snapshot{
		brackets: make(map[string]*model.Bracket),
		byLeague: make(map[string][]*model.Bracket),
		matches:  make(map[string]*model.Match),
		stats:    stats.NewSnapshot(),
	}
}

// Engine aggregates every provider into one queryable snapshot.
type Engine struct {
	providers []provider.Provider
	fetcher   fetcher.Fetcher
	opts      Options
	logger    *zap.Logger

	// reloadMu serializes reloads; mu only guards the snapshot pointer.
	reloadMu sync.Mutex
	mu       sync.RWMutex
	snap     *snapshot
	ready    atomic.Bool

	cbMu      sync.Mutex
	callbacks []func()
}

// New creates an engine over providers. Nothing is loaded until Start or Reload.
func New(providers []provider.Provider, f fetcher.Fetcher, opts Options, logger *zap.Logger) *Engine {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.FallbackLivestreamLink == "" {
		opts.FallbackLivestreamLink = DefaultLivestreamLink
	}
	return &Engine{
		providers: providers,
		fetcher:   f,
		opts:      opts,
		logger:    logger,
		snap:      emptySnapshot(),
	}
}

// Start runs the initial reload in the background. The returned channel is closed once
// it finished, successfully or not.
func (e *Engine) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := e.Reload(ctx); err != nil {
			e.logger.Error("Initial esports load failed", zap.Error(err))
		}
	}()
	return done
}

// IsReady reports whether a reload has completed.
func (e *Engine) IsReady() bool {
	return e.ready.Load()
}

// RegisterCallback adds fn to the functions run after every published reload.
func (e *Engine) RegisterCallback(fn func()) {
	e.cbMu.Lock()
	e.callbacks = append(e.callbacks, fn)
	e.cbMu.Unlock()
}

// ReloadData flushes the fetcher's memory cache, then reloads.
func (e *Engine) ReloadData(ctx context.Context) error {
	if fl, ok := e.fetcher.(fetcher.Flusher); ok {
		fl.FlushCache()
	}
	return e.Reload(ctx)
}

// Reload asks every provider to load, assembles a new snapshot from their staged state
// outside of any reader visible lock and publishes it in one swap. A provider that fails keeps its previous
// state; only a cancelled context prevents publication.
func (e *Engine) Reload(ctx context.Context) error {
	e.reloadMu.Lock()
	defer e.reloadMu.Unlock()

	start := time.Now()
	prev := e.current()

	var champs *champion.Catalog
	var g errgroup.Group
	for _, p := range e.providers {
		g.Go(func() error {
			if err := p.LoadData(ctx); err != nil {
				e.logger.Warn("Provider load failed, keeping previous data",
					zap.String("league", p.LeagueID()),
					zap.Error(err))
			}
			return nil
		})
	}
	g.Go(func() error {
		champs = e.loadChampions(ctx, prev.champs)
		return nil
	})
	_ = g.Wait()

	states := make([]provider.State, len(e.providers))
	for i, p := range e.providers {
		states[i] = p.Pending()
	}
	next := e.assemble(ctx, states, champs, prev.generation+1)
	if err := ctx.Err(); err != nil {
		for _, p := range e.providers {
			p.Discard()
		}
		return err
	}

	// Providers commit together with the swap so that match generations move exactly
	// when readers see the new snapshot. Polls until then target the published one.
	e.mu.Lock()
	for _, p := range e.providers {
		p.Commit()
	}
	e.snap = next
	e.mu.Unlock()
	e.ready.Store(true)

	e.logger.Info("Loading esports complete, running callbacks",
		zap.Uint64("generation", next.generation),
		zap.Int("matches", len(next.matches)),
		zap.Duration("took", time.Since(start)))
	e.runCallbacks()
	return nil
}

func (e *Engine) loadChampions(ctx context.Context, prev *champion.Catalog) *champion.Catalog {
	if e.opts.ChampionDataURL == "" {
		return prev
	}
	c, err := champion.Load(ctx, e.fetcher, e.opts.ChampionDataURL)
	if err != nil {
		e.logger.Warn("Failed to load champions, keeping previous catalog", zap.Error(err))
		return prev
	}
	return c
}

func (e *Engine) assemble(ctx context.Context, states []provider.State, champs *champion.Catalog, gen uint64) *snapshot {
	s := &snapshot{
		leagues:    append([]provider.Provider(nil), e.providers...),
		brackets:   make(map[string]*model.Bracket),
		byLeague:   make(map[string][]*model.Bracket),
		matches:    make(map[string]*model.Match),
		champs:     champs,
		generation: gen,
		loadedAt:   e.opts.Now(),
	}

	teams := make(map[string]*model.Team)
	teamAliases := make(map[string]string)
	leagues := make(map[string]provider.Provider)
	leagueAliases := make(map[string]string)
	var order []string

	for i, p := range e.providers {
		leagues[p.LeagueID()] = p
		leagueAliases[p.Name()] = p.LeagueID()
		for _, a := range p.Aliases() {
			leagueAliases[a] = p.LeagueID()
		}
		brackets := states[i].Brackets
		s.byLeague[p.LeagueID()] = brackets
		for _, b := range brackets {
			s.brackets[b.ID] = b
			for _, m := range b.Schedule {
				if _, ok := s.matches[m.ID()]; !ok {
					order = append(order, m.ID())
				}
				s.matches[m.ID()] = m
			}
		}
		for _, t := range states[i].Teams {
			teams[t.ID] = t
			teamAliases[t.Name] = t.ID
		}
	}

	s.schedule = make([]*model.Match, 0, len(order))
	for _, id := range order {
		s.schedule = append(s.schedule, s.matches[id])
	}
	sort.SliceStable(s.schedule, func(i, j int) bool {
		return s.schedule[i].Time().Before(s.schedule[j].Time())
	})

	s.teams = nameindex.New(teamAliases, teams, nil)
	s.leagueIdx = nameindex.New(leagueAliases, leagues, nil)
	s.stats = e.scrapeStats(ctx, states, champs)

	nicknames := make(map[string]string, len(e.opts.Nicknames))
	for alias, player := range e.opts.Nicknames {
		nicknames[alias] = nameindex.Canonicalize(player)
	}
	s.players = nameindex.New(nicknames, s.stats.Players, func(_ string, p *stats.Player) []string {
		return []string{p.Name}
	})
	return s
}

// scrapeStats tallies completed matches of stats enabled providers, one goroutine per
// provider, merged in provider order so repeated reloads produce identical snapshots.
func (e *Engine) scrapeStats(ctx context.Context, states []provider.State, champs *champion.Catalog) *stats.Snapshot {
	scraper := stats.NewScraper(e.fetcher, champs, e.logger)
	parts := make([]*stats.Snapshot, len(e.providers))

	var g errgroup.Group
	for i, p := range e.providers {
		parts[i] = stats.NewSnapshot()
		if !p.StatsEnabled() {
			continue
		}
		g.Go(func() error {
			for _, b := range states[i].Brackets {
				for _, m := range b.Schedule {
					if ctx.Err() != nil {
						return nil
					}
					if m.Winner() != "" {
						scraper.ScrapeMatch(ctx, p.LeagueID(), m, parts[i])
					}
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	total := stats.NewSnapshot()
	for _, part := range parts {
		total.Merge(part)
	}
	return total
}

func (e *Engine) runCallbacks() {
	e.cbMu.Lock()
	callbacks := append([]func(){}, e.callbacks...)
	e.cbMu.Unlock()

	for i, fn := range callbacks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					e.logger.Error("Esports callback panicked", zap.Int("callback", i), zap.Any("panic", r))
				}
			}()
			fn()
		}()
	}
	e.logger.Info("Esports callbacks complete")
}

// PollUpdates asks every provider, in order, for matches that changed since their last
// load. Providers mutate the published handles, which the current snapshot shares, so the
// change is visible without a swap even while a reload is in flight. Handles superseded
// by a concurrent commit are dropped.
func (e *Engine) PollUpdates(ctx context.Context) []*model.Match {
	var changed []*model.Match
	for _, p := range e.providers {
		for _, m := range p.UpdateMatches(ctx) {
			if m.Stale() {
				continue
			}
			changed = append(changed, m)
		}
	}
	return changed
}

func (e *Engine) current() *snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap
}
