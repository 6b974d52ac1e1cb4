package commands

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	application "chorus/contexts/finance-core/royalty-ledger/application"
	"chorus/contexts/finance-core/royalty-ledger/domain/entities"
	domainerrors "chorus/contexts/finance-core/royalty-ledger/domain/errors"
	"chorus/contexts/finance-core/royalty-ledger/ports"
)

const (
	moduleName              = "finance-core/royalty-ledger"
	RoyaltyDistributedTopic = "royalty.distributed"
)

type DistributeCommand struct {
	Caller string
	SongID uint64
	Amount int64
}

type RegisterSongCommand struct {
	Caller       string
	Title        string
	IPFSHash     string
	Contributors []entities.Contributor
}

type SetAdminCommand struct {
	Caller   string
	NewAdmin string
}

// RoyaltyDistributedPayload is the event body appended to the outbox after
// every successful distribution.
type RoyaltyDistributedPayload struct {
	SongID      uint64  `json:"song_id"`
	PaymentID   uint64  `json:"payment_id"`
	Amount      int64   `json:"amount"`
	Distributor string  `json:"distributor"`
	Shares      []Share `json:"shares"`
}

type Share struct {
	Account string `json:"account"`
	Share   int64  `json:"share"`
}

// UseCase executes the mutating ledger operations. Mutations serializes
// them so each command runs to completion with no interleaving writer,
// which is what makes the distribution effect atomic relative to every
// other call.
type UseCase struct {
	Repository ports.Repository
	Outbox     ports.OutboxWriter
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Mutations  *sync.Mutex
	Logger     *slog.Logger
}

// Distribute splits amount across the song's contributors by their
// registered percentages and records the payment. Precondition order is
// part of the external contract: paused, amount, song existence, percentage
// sum, then the all-or-nothing positive-share rule.
func (uc UseCase) Distribute(ctx context.Context, cmd DistributeCommand) (uint64, error) {
	logger := application.ResolveLogger(uc.Logger)
	unlock := uc.lock()
	defer unlock()

	caller := strings.TrimSpace(cmd.Caller)
	state, err := uc.Repository.GetLedgerState(ctx)
	if err != nil {
		return 0, err
	}
	if state.Paused {
		logger.Warn("royalty distribution rejected while paused",
			"event", "royalty_distribute_rejected_paused",
			"module", moduleName,
			"layer", "application",
			"song_id", cmd.SongID,
			"caller", caller,
		)
		return 0, domainerrors.ErrLedgerPaused
	}
	if cmd.Amount <= 0 {
		logger.Warn("royalty distribution invalid amount",
			"event", "royalty_distribute_invalid_amount",
			"module", moduleName,
			"layer", "application",
			"song_id", cmd.SongID,
			"amount", cmd.Amount,
		)
		return 0, domainerrors.ErrInvalidAmount
	}
	song, err := uc.Repository.GetSong(ctx, cmd.SongID)
	if err != nil {
		logger.Warn("royalty distribution song lookup failed",
			"event", "royalty_distribute_song_lookup_failed",
			"module", moduleName,
			"layer", "application",
			"song_id", cmd.SongID,
			"error", err.Error(),
		)
		return 0, err
	}
	if total := song.PercentageTotal(); total != 100 {
		logger.Warn("royalty distribution percentage sum mismatch",
			"event", "royalty_distribute_percentage_mismatch",
			"module", moduleName,
			"layer", "application",
			"song_id", cmd.SongID,
			"percentage_total", total,
		)
		return 0, domainerrors.ErrInvalidSong
	}

	shares := make([]entities.ContributorShare, 0, len(song.Contributors))
	for _, contributor := range song.Contributors {
		share := cmd.Amount * int64(contributor.Percentage) / 100
		if share <= 0 {
			logger.Warn("royalty distribution rejected by zero share",
				"event", "royalty_distribute_zero_share",
				"module", moduleName,
				"layer", "application",
				"song_id", cmd.SongID,
				"amount", cmd.Amount,
				"account", contributor.Account,
				"percentage", contributor.Percentage,
			)
			return 0, domainerrors.ErrDistributionFailed
		}
		shares = append(shares, entities.ContributorShare{
			Account: contributor.Account,
			Share:   share,
		})
	}

	distribution := entities.Distribution{
		SongID:      cmd.SongID,
		Amount:      cmd.Amount,
		Distributor: caller,
		Shares:      shares,
		OccurredAt:  uc.now(),
	}
	paymentID, err := uc.Repository.ApplyDistribution(ctx, distribution)
	if err != nil {
		logger.Error("royalty distribution apply failed",
			"event", "royalty_distribute_apply_failed",
			"module", moduleName,
			"layer", "application",
			"song_id", cmd.SongID,
			"amount", cmd.Amount,
			"error", err.Error(),
		)
		return 0, err
	}

	uc.appendDistributedOutbox(ctx, logger, distribution, paymentID)

	logger.Info("royalties distributed",
		"event", "royalties_distributed",
		"module", moduleName,
		"layer", "application",
		"song_id", cmd.SongID,
		"payment_id", paymentID,
		"amount", cmd.Amount,
		"distributor", caller,
		"contributor_count", len(shares),
	)
	return paymentID, nil
}

// RegisterSong adds a song with its split table. Shape is validated here;
// the percentage sum is deliberately checked only at distribution time.
func (uc UseCase) RegisterSong(ctx context.Context, cmd RegisterSongCommand) (entities.Song, error) {
	logger := application.ResolveLogger(uc.Logger)
	unlock := uc.lock()
	defer unlock()

	artist := strings.TrimSpace(cmd.Caller)
	title := strings.TrimSpace(cmd.Title)
	ipfsHash := strings.TrimSpace(cmd.IPFSHash)
	if artist == "" || title == "" || ipfsHash == "" || len(cmd.Contributors) == 0 {
		logger.Warn("song registration invalid input",
			"event", "royalty_register_song_invalid_input",
			"module", moduleName,
			"layer", "application",
			"artist", artist,
			"title", title,
		)
		return entities.Song{}, domainerrors.ErrInvalidSongInput
	}
	contributors := make([]entities.Contributor, 0, len(cmd.Contributors))
	for _, contributor := range cmd.Contributors {
		account := strings.TrimSpace(contributor.Account)
		if account == "" || contributor.Percentage < 0 || contributor.Percentage > 100 {
			logger.Warn("song registration invalid contributor",
				"event", "royalty_register_song_invalid_contributor",
				"module", moduleName,
				"layer", "application",
				"title", title,
				"account", account,
				"percentage", contributor.Percentage,
			)
			return entities.Song{}, domainerrors.ErrInvalidSongInput
		}
		contributors = append(contributors, entities.Contributor{
			Account:    account,
			Percentage: contributor.Percentage,
		})
	}

	song := entities.Song{
		Title:        title,
		Artist:       artist,
		IPFSHash:     ipfsHash,
		Contributors: contributors,
		CreatedAt:    uc.now(),
	}
	songID, err := uc.Repository.CreateSong(ctx, song)
	if err != nil {
		logger.Error("song registration create failed",
			"event", "royalty_register_song_create_failed",
			"module", moduleName,
			"layer", "application",
			"title", title,
			"artist", artist,
			"error", err.Error(),
		)
		return entities.Song{}, err
	}
	song.ID = songID

	logger.Info("song registered",
		"event", "royalty_song_registered",
		"module", moduleName,
		"layer", "application",
		"song_id", song.ID,
		"title", title,
		"artist", artist,
		"contributor_count", len(contributors),
	)
	return song, nil
}

// Pause halts distributions. Admin only.
func (uc UseCase) Pause(ctx context.Context, caller string) error {
	return uc.setPaused(ctx, caller, true)
}

// Unpause resumes distributions. Admin only.
func (uc UseCase) Unpause(ctx context.Context, caller string) error {
	return uc.setPaused(ctx, caller, false)
}

func (uc UseCase) setPaused(ctx context.Context, caller string, paused bool) error {
	logger := application.ResolveLogger(uc.Logger)
	unlock := uc.lock()
	defer unlock()

	if err := uc.requireAdmin(ctx, logger, caller, "royalty_pause_unauthorized"); err != nil {
		return err
	}
	if err := uc.Repository.SetPaused(ctx, paused); err != nil {
		logger.Error("ledger pause flag update failed",
			"event", "royalty_pause_update_failed",
			"module", moduleName,
			"layer", "application",
			"paused", paused,
			"error", err.Error(),
		)
		return err
	}
	logger.Info("ledger pause flag updated",
		"event", "royalty_pause_updated",
		"module", moduleName,
		"layer", "application",
		"paused", paused,
		"caller", strings.TrimSpace(caller),
	)
	return nil
}

// SetAdmin transfers admin rights immediately. The previous admin loses all
// rights the instant the call returns.
func (uc UseCase) SetAdmin(ctx context.Context, cmd SetAdminCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	unlock := uc.lock()
	defer unlock()

	if err := uc.requireAdmin(ctx, logger, cmd.Caller, "royalty_set_admin_unauthorized"); err != nil {
		return err
	}
	newAdmin := strings.TrimSpace(cmd.NewAdmin)
	if err := uc.Repository.SetAdmin(ctx, newAdmin); err != nil {
		logger.Error("ledger admin transfer failed",
			"event", "royalty_set_admin_failed",
			"module", moduleName,
			"layer", "application",
			"new_admin", newAdmin,
			"error", err.Error(),
		)
		return err
	}
	logger.Info("ledger admin transferred",
		"event", "royalty_admin_transferred",
		"module", moduleName,
		"layer", "application",
		"previous_admin", strings.TrimSpace(cmd.Caller),
		"new_admin", newAdmin,
	)
	return nil
}

func (uc UseCase) requireAdmin(ctx context.Context, logger *slog.Logger, caller string, event string) error {
	state, err := uc.Repository.GetLedgerState(ctx)
	if err != nil {
		return err
	}
	if strings.TrimSpace(caller) != state.Admin {
		logger.Warn("ledger admin check failed",
			"event", event,
			"module", moduleName,
			"layer", "application",
			"caller", strings.TrimSpace(caller),
		)
		return domainerrors.ErrUnauthorized
	}
	return nil
}

// appendDistributedOutbox enqueues the distribution event. The ledger write
// has already committed, so a failed enqueue is logged and dropped rather
// than surfaced as a distribution failure.
func (uc UseCase) appendDistributedOutbox(
	ctx context.Context,
	logger *slog.Logger,
	distribution entities.Distribution,
	paymentID uint64,
) {
	if uc.Outbox == nil {
		return
	}
	eventID := ""
	if uc.IDGen != nil {
		generated, err := uc.IDGen.NewID(ctx)
		if err == nil {
			eventID = generated
		}
	}
	shares := make([]Share, 0, len(distribution.Shares))
	for _, share := range distribution.Shares {
		shares = append(shares, Share{Account: share.Account, Share: share.Share})
	}
	envelope := ports.EventEnvelope{
		EventID:        eventID,
		EventType:      RoyaltyDistributedTopic,
		SourceService:  "chorus",
		OccurredAtUTC:  distribution.OccurredAt.UTC(),
		CorrelationID:  eventID,
		EntityType:     "song",
		EntityID:       strconv.FormatUint(distribution.SongID, 10),
		PayloadVersion: 1,
		Payload: RoyaltyDistributedPayload{
			SongID:      distribution.SongID,
			PaymentID:   paymentID,
			Amount:      distribution.Amount,
			Distributor: distribution.Distributor,
			Shares:      shares,
		},
	}
	if err := uc.Outbox.AppendOutbox(ctx, envelope); err != nil {
		logger.Error("royalty distributed event enqueue failed",
			"event", "royalty_distributed_outbox_failed",
			"module", moduleName,
			"layer", "application",
			"song_id", distribution.SongID,
			"payment_id", paymentID,
			"error", err.Error(),
		)
	}
}

func (uc UseCase) lock() func() {
	if uc.Mutations == nil {
		return func() {}
	}
	uc.Mutations.Lock()
	return uc.Mutations.Unlock
}

func (uc UseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
