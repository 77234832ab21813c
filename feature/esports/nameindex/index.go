package nameindex

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when no alias matches the query.
	ErrNotFound = errors.New("nameindex: not found")
	// ErrAmbiguous is returned when the query matches several distinct entries.
	ErrAmbiguous = errors.New("nameindex: ambiguous")
)

// AliasFunc lists implicit aliases of a value, such as its display name.
type AliasFunc[V any] func(key string, value V) []string

// Index resolves user supplied strings to values through their keys and aliases.
// It is read-only after construction and safe for concurrent use.
type Index[V any] struct {
	values map[string]V
	// aliases maps a canonical alias to the keys it names.
	aliases map[string][]string
	// canon is the sorted list of canonical aliases, scanned by fuzzy lookups.
	canon []string
}

// New builds an index over values. aliases maps alias strings to keys of values; aliases
// naming unknown keys are dropped. Every key is implicitly its own alias, and implicit may
// contribute more (nil for none).
func New[V any](aliases map[string]string, values map[string]V, implicit AliasFunc[V]) *Index[V] {
	idx := &Index[V]{
		values:  make(map[string]V, len(values)),
		aliases: make(map[string][]string),
	}
	for k, v := range values {
		idx.values[k] = v
		idx.addAlias(k, k)
		if implicit != nil {
			for _, a := range implicit(k, v) {
				idx.addAlias(a, k)
			}
		}
	}
	for a, k := range aliases {
		if _, ok := values[k]; ok {
			idx.addAlias(a, k)
		}
	}

	idx.canon = make([]string, 0, len(idx.aliases))
	for a, keys := range idx.aliases {
		sort.Strings(keys)
		idx.canon = append(idx.canon, a)
	}
	sort.Strings(idx.canon)
	return idx
}

func (idx *Index[V]) addAlias(alias, key string) {
	c := Canonicalize(alias)
	if c == "" {
		return
	}
	for _, k := range idx.aliases[c] {
		if k == key {
			return
		}
	}
	idx.aliases[c] = append(idx.aliases[c], key)
}

// Resolve returns the key named by query. Resolution order: exact key, canonical alias,
// then a unique prefix match, then a unique substring match. Matches naming more than one
// key yield ErrAmbiguous; the index never picks one of them.
func (idx *Index[V]) Resolve(query string) (string, error) {
	if key, err := idx.ResolveExact(query); !errors.Is(err, ErrNotFound) {
		return key, err
	}
	c := Canonicalize(query)
	if idx == nil || c == "" {
		return "", ErrNotFound
	}

	if key, err := idx.fuzzy(func(alias string) bool { return strings.HasPrefix(alias, c) }); !errors.Is(err, ErrNotFound) {
		return key, err
	}
	return idx.fuzzy(func(alias string) bool { return strings.Contains(alias, c) })
}

// ResolveExact is Resolve without the fuzzy tiers: only an exact key or a canonical
// alias matches.
func (idx *Index[V]) ResolveExact(query string) (string, error) {
	if idx == nil {
		return "", ErrNotFound
	}
	if _, ok := idx.values[query]; ok {
		return query, nil
	}
	c := Canonicalize(query)
	if c == "" {
		return "", ErrNotFound
	}
	if keys, ok := idx.aliases[c]; ok {
		return single(keys)
	}
	return "", ErrNotFound
}

func (idx *Index[V]) fuzzy(match func(alias string) bool) (string, error) {
	seen := make(map[string]struct{})
	var keys []string
	for _, a := range idx.canon {
		if !match(a) {
			continue
		}
		for _, k := range idx.aliases[a] {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				keys = append(keys, k)
			}
		}
	}
	return single(keys)
}

func single(keys []string) (string, error) {
	switch len(keys) {
	case 0:
		return "", ErrNotFound
	case 1:
		return keys[0], nil
	default:
		return "", ErrAmbiguous
	}
}

// Lookup returns the value named by query.
func (idx *Index[V]) Lookup(query string) (V, error) {
	key, err := idx.Resolve(query)
	if err != nil {
		var zero V
		return zero, err
	}
	return idx.values[key], nil
}

// LookupExact returns the value named by query through ResolveExact.
func (idx *Index[V]) LookupExact(query string) (V, error) {
	key, err := idx.ResolveExact(query)
	if err != nil {
		var zero V
		return zero, err
	}
	return idx.values[key], nil
}

// Contains reports whether query resolves to exactly one entry.
func (idx *Index[V]) Contains(query string) bool {
	_, err := idx.Resolve(query)
	return err == nil
}

// Get returns the value stored under key, without alias resolution.
func (idx *Index[V]) Get(key string) (V, bool) {
	if idx == nil {
		var zero V
		return zero, false
	}
	v, ok := idx.values[key]
	return v, ok
}

// Len returns the number of entries.
func (idx *Index[V]) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.values)
}

// Keys returns every key in sorted order.
func (idx *Index[V]) Keys() []string {
	if idx == nil {
		return nil
	}
	keys := make([]string, 0, len(idx.values))
	for k := range idx.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
