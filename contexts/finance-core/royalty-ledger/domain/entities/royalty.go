package entities

import "time"

// RoyaltyRecord is one immutable history entry, keyed by (SongID, PaymentID).
// PaymentID values come from the global payment counter and never repeat.
type RoyaltyRecord struct {
	SongID      uint64
	PaymentID   uint64
	Amount      int64
	Distributor string
	OccurredAt  time.Time
}

// ContributorShare is the truncated integer portion of one distribution
// allocated to a single contributor account.
type ContributorShare struct {
	Account string
	Share   int64
}

// Distribution is a fully validated split ready to be applied atomically:
// every share is positive and the shares were derived from a song whose
// percentages sum to exactly 100.
type Distribution struct {
	SongID      uint64
	Amount      int64
	Distributor string
	Shares      []ContributorShare
	OccurredAt  time.Time
}

// LedgerState is the single-row governance state of the ledger.
type LedgerState struct {
	Admin          string
	Paused         bool
	PaymentCounter uint64
}
