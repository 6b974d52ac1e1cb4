// Package royaltyledger implements the royalty distribution ledger for the
// Chorus monolith.
//
// The module owns the song registry, contributor balance tables, and the
// append-only royalty payment history, and exposes HTTP command/query
// handlers plus the outbox relay worker entrypoint.
package royaltyledger
