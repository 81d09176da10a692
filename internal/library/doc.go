// Package library implements the client-side state managers for the song repertoire.
//
// Three managers own all mutable state, one slice each:
//
//  1. [Session] : current user; wraps register/login/fetch-user backend calls
//  2. [Collection] : the authoritative in-memory song list; wraps song CRUD
//  3. [Search] : catalog results and the capped, deduplicated search history
//
// Each manager is the exclusive owner of its state and mutates it only inside
// the completion of its own backend call or a purely local operation (logout,
// favorite toggle bookkeeping, clear-history). Mutations to the song list are
// applied only after the server acknowledges them; overlapping updates to the
// same song are resolved by per-song mutation sequence numbers, so a response
// that arrives after a newer mutation has been applied is discarded.
//
// Error propagation is deliberately asymmetric: session errors are returned to
// the caller so the UI can block on them, while collection and search failures
// are logged and degrade to a safe default (unchanged list, empty results).
//
// The package also provides pure derivations with no state of their own:
// [Query.Apply] (filter + sort view of the collection), [Aggregate]
// (statistics), and [PickRandom].
package library
