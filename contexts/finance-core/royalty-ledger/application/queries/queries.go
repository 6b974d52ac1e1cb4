package queries

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "chorus/contexts/finance-core/royalty-ledger/application"
	"chorus/contexts/finance-core/royalty-ledger/domain/entities"
	domainerrors "chorus/contexts/finance-core/royalty-ledger/domain/errors"
	"chorus/contexts/finance-core/royalty-ledger/ports"
)

const moduleName = "finance-core/royalty-ledger"

// UseCase serves the read-only ledger accessors. Reads are
// snapshot-consistent and never mutate state.
type UseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (uc UseCase) GetSong(ctx context.Context, songID uint64) (entities.Song, error) {
	logger := application.ResolveLogger(uc.Logger)
	song, err := uc.Repository.GetSong(ctx, songID)
	if err != nil {
		logger.Warn("royalty query get song failed",
			"event", "royalty_query_get_song_failed",
			"module", moduleName,
			"layer", "application",
			"song_id", songID,
			"error", err.Error(),
		)
		return entities.Song{}, err
	}
	return song, nil
}

// RoyaltyHistory returns the payment record for (songID, paymentID), or nil
// when no such record exists. Absence is not an error.
func (uc UseCase) RoyaltyHistory(ctx context.Context, songID uint64, paymentID uint64) (*entities.RoyaltyRecord, error) {
	record, err := uc.Repository.GetRoyaltyRecord(ctx, songID, paymentID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrRoyaltyNotFound) {
			return nil, nil
		}
		application.ResolveLogger(uc.Logger).Warn("royalty query history failed",
			"event", "royalty_query_history_failed",
			"module", moduleName,
			"layer", "application",
			"song_id", songID,
			"payment_id", paymentID,
			"error", err.Error(),
		)
		return nil, err
	}
	return &record, nil
}

// ContributorBalance returns the accrued balance for the account on one
// song. Unknown pairs report zero.
func (uc UseCase) ContributorBalance(ctx context.Context, songID uint64, account string) (int64, error) {
	return uc.Repository.GetContributorBalance(ctx, songID, strings.TrimSpace(account))
}

// TotalBalance returns the account's accrued balance across all songs.
func (uc UseCase) TotalBalance(ctx context.Context, account string) (int64, error) {
	return uc.Repository.GetTotalBalance(ctx, strings.TrimSpace(account))
}

// LedgerState reports admin identity, pause flag, and payment counter.
func (uc UseCase) LedgerState(ctx context.Context) (entities.LedgerState, error) {
	state, err := uc.Repository.GetLedgerState(ctx)
	if err != nil {
		application.ResolveLogger(uc.Logger).Warn("royalty query ledger state failed",
			"event", "royalty_query_ledger_state_failed",
			"module", moduleName,
			"layer", "application",
			"error", err.Error(),
		)
		return entities.LedgerState{}, err
	}
	return state, nil
}
