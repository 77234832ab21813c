// Package nameindex implements alias-tolerant lookup of leagues, teams, players and
// champions.
//
// An Index maps many strings (keys, declared aliases, implicit aliases such as display
// names) onto one value. Lookups try, in order: the exact key, the canonicalized alias
// (see Canonicalize), a unique prefix of an alias, and a unique substring of an alias.
// A query matching several entries is reported as ErrAmbiguous rather than guessed.
//
// Indexes are rebuilt on every reload and never mutated afterwards.
package nameindex
