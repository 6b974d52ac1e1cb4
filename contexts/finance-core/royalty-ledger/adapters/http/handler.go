package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "chorus/contexts/finance-core/royalty-ledger/application"
	"chorus/contexts/finance-core/royalty-ledger/application/commands"
	"chorus/contexts/finance-core/royalty-ledger/application/queries"
	"chorus/contexts/finance-core/royalty-ledger/domain/entities"
	httptransport "chorus/contexts/finance-core/royalty-ledger/transport/http"
)

const moduleName = "finance-core/royalty-ledger"

type Handler struct {
	Commands commands.UseCase
	Queries  queries.UseCase
	Logger   *slog.Logger
}

// DistributeHandler godoc
// @Summary Distribute royalties for a song
// @Description Splits amount across the song's contributors by their registered percentages and records the payment.
// @Tags royalty-ledger
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Caller identity"
// @Param song_id path int true "Song id"
// @Param request body httptransport.DistributeRequest true "Distribution amount"
// @Success 200 {object} httptransport.DistributeResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /v1/royalty/songs/{song_id}/distributions [post]
func (h Handler) DistributeHandler(
	ctx context.Context,
	callerID string,
	songID uint64,
	req httptransport.DistributeRequest,
) (httptransport.DistributeResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	paymentID, err := h.Commands.Distribute(ctx, commands.DistributeCommand{
		Caller: callerID,
		SongID: songID,
		Amount: req.Amount,
	})
	if err != nil {
		logger.Warn("royalty http distribute failed",
			"event", "royalty_http_distribute_failed",
			"module", moduleName,
			"layer", "adapter",
			"song_id", songID,
			"caller", strings.TrimSpace(callerID),
			"amount", req.Amount,
			"error", err.Error(),
		)
		return httptransport.DistributeResponse{}, err
	}
	logger.Info("royalty http distribute completed",
		"event", "royalty_http_distribute_completed",
		"module", moduleName,
		"layer", "adapter",
		"song_id", songID,
		"payment_id", paymentID,
		"amount", req.Amount,
	)
	return httptransport.DistributeResponse{
		SongID:    songID,
		PaymentID: paymentID,
		Amount:    req.Amount,
	}, nil
}

// RegisterSongHandler godoc
// @Summary Register a song with its contributor split
// @Tags royalty-ledger
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Caller identity (registered as artist)"
// @Param request body httptransport.RegisterSongRequest true "Song definition"
// @Success 200 {object} httptransport.SongDTO
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /v1/royalty/songs [post]
func (h Handler) RegisterSongHandler(
	ctx context.Context,
	callerID string,
	req httptransport.RegisterSongRequest,
) (httptransport.SongDTO, error) {
	logger := application.ResolveLogger(h.Logger)
	contributors := make([]entities.Contributor, 0, len(req.Contributors))
	for _, contributor := range req.Contributors {
		contributors = append(contributors, entities.Contributor{
			Account:    contributor.Account,
			Percentage: contributor.Percentage,
		})
	}
	song, err := h.Commands.RegisterSong(ctx, commands.RegisterSongCommand{
		Caller:       callerID,
		Title:        req.Title,
		IPFSHash:     req.IPFSHash,
		Contributors: contributors,
	})
	if err != nil {
		logger.Warn("royalty http register song failed",
			"event", "royalty_http_register_song_failed",
			"module", moduleName,
			"layer", "adapter",
			"caller", strings.TrimSpace(callerID),
			"title", strings.TrimSpace(req.Title),
			"error", err.Error(),
		)
		return httptransport.SongDTO{}, err
	}
	logger.Info("royalty http register song completed",
		"event", "royalty_http_register_song_completed",
		"module", moduleName,
		"layer", "adapter",
		"song_id", song.ID,
		"title", song.Title,
	)
	return songToDTO(song), nil
}

// GetSongHandler godoc
// @Summary Get a registered song
// @Tags royalty-ledger
// @Produce json
// @Param song_id path int true "Song id"
// @Success 200 {object} httptransport.SongDTO
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/royalty/songs/{song_id} [get]
func (h Handler) GetSongHandler(ctx context.Context, songID uint64) (httptransport.SongDTO, error) {
	song, err := h.Queries.GetSong(ctx, songID)
	if err != nil {
		return httptransport.SongDTO{}, err
	}
	return songToDTO(song), nil
}

// HistoryHandler godoc
// @Summary Get one royalty payment record
// @Description Returns a null record when no payment exists for the pair.
// @Tags royalty-ledger
// @Produce json
// @Param song_id path int true "Song id"
// @Param payment_id path int true "Payment sequence"
// @Success 200 {object} httptransport.RoyaltyHistoryResponse
// @Router /v1/royalty/songs/{song_id}/payments/{payment_id} [get]
func (h Handler) HistoryHandler(
	ctx context.Context,
	songID uint64,
	paymentID uint64,
) (httptransport.RoyaltyHistoryResponse, error) {
	record, err := h.Queries.RoyaltyHistory(ctx, songID, paymentID)
	if err != nil {
		return httptransport.RoyaltyHistoryResponse{}, err
	}
	if record == nil {
		return httptransport.RoyaltyHistoryResponse{}, nil
	}
	return httptransport.RoyaltyHistoryResponse{
		Record: &httptransport.RoyaltyRecordDTO{
			SongID:      record.SongID,
			PaymentID:   record.PaymentID,
			Amount:      record.Amount,
			Distributor: record.Distributor,
			OccurredAt:  record.OccurredAt.UTC().Format(time.RFC3339),
		},
	}, nil
}

// BalanceHandler godoc
// @Summary Get a contributor's accrued balance on one song
// @Tags royalty-ledger
// @Produce json
// @Param song_id path int true "Song id"
// @Param account path string true "Contributor account"
// @Success 200 {object} httptransport.BalanceResponse
// @Router /v1/royalty/songs/{song_id}/balances/{account} [get]
func (h Handler) BalanceHandler(
	ctx context.Context,
	songID uint64,
	account string,
) (httptransport.BalanceResponse, error) {
	balance, err := h.Queries.ContributorBalance(ctx, songID, account)
	if err != nil {
		return httptransport.BalanceResponse{}, err
	}
	return httptransport.BalanceResponse{
		SongID:  songID,
		Account: strings.TrimSpace(account),
		Balance: balance,
	}, nil
}

// TotalBalanceHandler godoc
// @Summary Get a contributor's accrued balance across all songs
// @Tags royalty-ledger
// @Produce json
// @Param account path string true "Contributor account"
// @Success 200 {object} httptransport.BalanceResponse
// @Router /v1/royalty/balances/{account} [get]
func (h Handler) TotalBalanceHandler(ctx context.Context, account string) (httptransport.BalanceResponse, error) {
	balance, err := h.Queries.TotalBalance(ctx, account)
	if err != nil {
		return httptransport.BalanceResponse{}, err
	}
	return httptransport.BalanceResponse{
		Account: strings.TrimSpace(account),
		Balance: balance,
	}, nil
}

// StatusHandler godoc
// @Summary Get ledger governance state
// @Tags royalty-ledger
// @Produce json
// @Success 200 {object} httptransport.LedgerStatusResponse
// @Router /v1/royalty/ledger [get]
func (h Handler) StatusHandler(ctx context.Context) (httptransport.LedgerStatusResponse, error) {
	state, err := h.Queries.LedgerState(ctx)
	if err != nil {
		return httptransport.LedgerStatusResponse{}, err
	}
	return httptransport.LedgerStatusResponse{
		Admin:          state.Admin,
		Paused:         state.Paused,
		PaymentCounter: state.PaymentCounter,
	}, nil
}

// PauseHandler godoc
// @Summary Pause distributions
// @Tags royalty-ledger
// @Produce json
// @Param X-User-Id header string true "Caller identity (must be admin)"
// @Success 200 {object} httptransport.PauseResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /v1/royalty/ledger/pause [post]
func (h Handler) PauseHandler(ctx context.Context, callerID string) (httptransport.PauseResponse, error) {
	if err := h.Commands.Pause(ctx, callerID); err != nil {
		h.logAdminFailure("royalty_http_pause_failed", callerID, err)
		return httptransport.PauseResponse{}, err
	}
	return httptransport.PauseResponse{Paused: true}, nil
}

// UnpauseHandler godoc
// @Summary Resume distributions
// @Tags royalty-ledger
// @Produce json
// @Param X-User-Id header string true "Caller identity (must be admin)"
// @Success 200 {object} httptransport.PauseResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /v1/royalty/ledger/unpause [post]
func (h Handler) UnpauseHandler(ctx context.Context, callerID string) (httptransport.PauseResponse, error) {
	if err := h.Commands.Unpause(ctx, callerID); err != nil {
		h.logAdminFailure("royalty_http_unpause_failed", callerID, err)
		return httptransport.PauseResponse{}, err
	}
	return httptransport.PauseResponse{Paused: false}, nil
}

// SetAdminHandler godoc
// @Summary Transfer ledger admin rights
// @Tags royalty-ledger
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Caller identity (must be admin)"
// @Param request body httptransport.SetAdminRequest true "New admin identity"
// @Success 200 {object} httptransport.LedgerStatusResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /v1/royalty/ledger/admin [post]
func (h Handler) SetAdminHandler(
	ctx context.Context,
	callerID string,
	req httptransport.SetAdminRequest,
) (httptransport.LedgerStatusResponse, error) {
	if err := h.Commands.SetAdmin(ctx, commands.SetAdminCommand{
		Caller:   callerID,
		NewAdmin: req.NewAdmin,
	}); err != nil {
		h.logAdminFailure("royalty_http_set_admin_failed", callerID, err)
		return httptransport.LedgerStatusResponse{}, err
	}
	return h.StatusHandler(ctx)
}

func (h Handler) logAdminFailure(event string, callerID string, err error) {
	application.ResolveLogger(h.Logger).Warn("royalty http admin operation failed",
		"event", event,
		"module", moduleName,
		"layer", "adapter",
		"caller", strings.TrimSpace(callerID),
		"error", err.Error(),
	)
}

func songToDTO(song entities.Song) httptransport.SongDTO {
	contributors := make([]httptransport.ContributorDTO, 0, len(song.Contributors))
	for _, contributor := range song.Contributors {
		contributors = append(contributors, httptransport.ContributorDTO{
			Account:    contributor.Account,
			Percentage: contributor.Percentage,
		})
	}
	return httptransport.SongDTO{
		ID:           song.ID,
		Title:        song.Title,
		Artist:       song.Artist,
		IPFSHash:     song.IPFSHash,
		Contributors: contributors,
		CreatedAt:    song.CreatedAt.UTC().Format(time.RFC3339),
	}
}
