package champion

import (
	"context"
	"fmt"

	"esports-tracker/core/fetcher"
	"esports-tracker/feature/esports/nameindex"

	"github.com/goccy/go-json"
)

// Champion is one playable champion.
type Champion struct {
	// ID is the numeric id game stats refer to.
	ID string `json:"key"`
	// Key is the internal name, e.g. "MonkeyKing".
	Key string `json:"id"`
	// Name is the display name, e.g. "Wukong".
	Name string `json:"name"`
}

type ddragonResponse struct {
	Data map[string]Champion `json:"data"`
}

// Catalog resolves champions by id or by a user supplied name.
type Catalog struct {
	index *nameindex.Index[Champion]
}

// NewCatalog indexes champs by id, with their key and display name as aliases.
func NewCatalog(champs []Champion) *Catalog {
	values := make(map[string]Champion, len(champs))
	for _, c := range champs {
		if c.ID == "" {
			continue
		}
		values[c.ID] = c
	}
	return &Catalog{
		index: nameindex.New(nil, values, func(_ string, c Champion) []string {
			return []string{c.Key, c.Name}
		}),
	}
}

// Load fetches a Data Dragon champion.json document.
func Load(ctx context.Context, f fetcher.Fetcher, url string) (*Catalog, error) {
	body, err := f.FetchJSON(ctx, url, fetcher.Options{UseStorage: true})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch champion data: %w", err)
	}
	var resp ddragonResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode champion data: %w", err)
	}
	champs := make([]Champion, 0, len(resp.Data))
	for _, c := range resp.Data {
		champs = append(champs, c)
	}
	return NewCatalog(champs), nil
}

// ChampID returns the id of the champion named by query.
func (c *Catalog) ChampID(query string) (string, bool) {
	if c == nil {
		return "", false
	}
	id, err := c.index.Resolve(query)
	return id, err == nil
}

// DisplayName returns the display name of the champion named by query.
func (c *Catalog) DisplayName(query string) (string, bool) {
	if c == nil {
		return "", false
	}
	champ, err := c.index.Lookup(query)
	return champ.Name, err == nil
}

// NameFromID returns the display name of the champion with id.
func (c *Catalog) NameFromID(id string) (string, bool) {
	if c == nil {
		return "", false
	}
	champ, ok := c.index.Get(id)
	return champ.Name, ok
}

// Len returns the number of known champions.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return c.index.Len()
}
