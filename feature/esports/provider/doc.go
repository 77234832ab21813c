// Package provider defines the contract every upstream tournament source implements.
//
// Exactly two variants exist: rito (lolesports league descriptors) and grumble (weekly
// match lists with explicit outcomes). Both embed *Base, which owns the published teams,
// brackets and match handles of the last successful LoadData and hands out read copies.
//
// # Failure policy
//
// A failed or malformed endpoint yields empty data for its own scope (one tournament,
// one roster, one game). Only a failure of the league level request aborts a LoadData or
// UpdateMatches, and then the previously published state is left untouched.
package provider
