package errors

import "errors"

var (
	ErrUnauthorized       = errors.New("caller is not the ledger admin")
	ErrLedgerPaused       = errors.New("ledger is paused")
	ErrInvalidSong        = errors.New("song is unknown or its contributor percentages do not sum to 100")
	ErrInvalidAmount      = errors.New("amount must be a positive integer")
	ErrDistributionFailed = errors.New("amount too small to credit every contributor")
	ErrRoyaltyNotFound    = errors.New("royalty record not found")
	ErrInvalidSongInput   = errors.New("invalid song registration input")
)

// Stable numeric identifiers external integrations branch on.
// 104 and 105 are reserved gaps in the historical numbering and stay unused.
const (
	CodeUnauthorized       = 100
	CodePaused             = 101
	CodeInvalidSong        = 102
	CodeInvalidAmount      = 103
	CodeDistributionFailed = 106
)

// Code resolves the stable numeric identifier for a domain error.
// It reports false for errors outside the external contract.
func Code(err error) (int, bool) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized, true
	case errors.Is(err, ErrLedgerPaused):
		return CodePaused, true
	case errors.Is(err, ErrInvalidSong), errors.Is(err, ErrInvalidSongInput):
		return CodeInvalidSong, true
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount, true
	case errors.Is(err, ErrDistributionFailed):
		return CodeDistributionFailed, true
	default:
		return 0, false
	}
}
