package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"chorus/contexts/finance-core/royalty-ledger/domain/entities"
	domainerrors "chorus/contexts/finance-core/royalty-ledger/domain/errors"
	"chorus/contexts/finance-core/royalty-ledger/ports"
	"chorus/internal/shared/outbox"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const ledgerStateRowID = 1

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Migrate creates the ledger tables.
func (r *Repository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(
		&songModel{},
		&royaltyRecordModel{},
		&contributorBalanceModel{},
		&totalBalanceModel{},
		&ledgerStateModel{},
		&royaltyOutboxModel{},
	)
}

// EnsureLedgerState seeds the single governance row on first boot. An
// existing row is left untouched, so a later restart never resets the
// admin, pause flag, or counters.
func (r *Repository) EnsureLedgerState(ctx context.Context, admin string) error {
	row := ledgerStateModel{
		ID:    ledgerStateRowID,
		Admin: strings.TrimSpace(admin),
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error; err != nil {
		return r.logError("royalty_repo_ensure_ledger_state_failed", err)
	}
	return nil
}

func (r *Repository) CreateSong(ctx context.Context, song entities.Song) (uint64, error) {
	var assigned uint64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var state ledgerStateModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&state, "id = ?", ledgerStateRowID).Error; err != nil {
			return err
		}
		assigned = state.SongCounter + 1
		if err := tx.Model(&ledgerStateModel{}).
			Where("id = ?", ledgerStateRowID).
			Update("song_counter", assigned).Error; err != nil {
			return err
		}

		contributors, err := json.Marshal(song.Contributors)
		if err != nil {
			return err
		}
		row := songModel{
			ID:           assigned,
			Title:        song.Title,
			Artist:       song.Artist,
			IPFSHash:     song.IPFSHash,
			Contributors: contributors,
			CreatedAt:    song.CreatedAt.UTC(),
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return 0, r.logError("royalty_repo_create_song_failed", err,
			"title", song.Title,
			"artist", song.Artist,
		)
	}
	return assigned, nil
}

func (r *Repository) GetSong(ctx context.Context, songID uint64) (entities.Song, error) {
	var row songModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", songID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Song{}, domainerrors.ErrInvalidSong
		}
		return entities.Song{}, r.logError("royalty_repo_get_song_failed", err,
			"song_id", songID,
		)
	}
	return row.toEntity()
}

func (r *Repository) GetLedgerState(ctx context.Context) (entities.LedgerState, error) {
	var row ledgerStateModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", ledgerStateRowID).Error; err != nil {
		return entities.LedgerState{}, r.logError("royalty_repo_get_ledger_state_failed", err)
	}
	return entities.LedgerState{
		Admin:          row.Admin,
		Paused:         row.Paused,
		PaymentCounter: row.PaymentCounter,
	}, nil
}

func (r *Repository) SetPaused(ctx context.Context, paused bool) error {
	result := r.db.WithContext(ctx).
		Model(&ledgerStateModel{}).
		Where("id = ?", ledgerStateRowID).
		Update("paused", paused)
	if result.Error != nil {
		return r.logError("royalty_repo_set_paused_failed", result.Error,
			"paused", paused,
		)
	}
	return nil
}

func (r *Repository) SetAdmin(ctx context.Context, admin string) error {
	result := r.db.WithContext(ctx).
		Model(&ledgerStateModel{}).
		Where("id = ?", ledgerStateRowID).
		Update("admin", admin)
	if result.Error != nil {
		return r.logError("royalty_repo_set_admin_failed", result.Error,
			"new_admin", admin,
		)
	}
	return nil
}

// ApplyDistribution runs the whole effect in one transaction with the
// ledger-state row locked, so the counter allocation, balance upserts, and
// history insert commit or roll back together.
func (r *Repository) ApplyDistribution(ctx context.Context, distribution entities.Distribution) (uint64, error) {
	var paymentID uint64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var state ledgerStateModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&state, "id = ?", ledgerStateRowID).Error; err != nil {
			return err
		}
		paymentID = state.PaymentCounter

		for _, share := range distribution.Shares {
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "song_id"}, {Name: "account"}},
				DoUpdates: clause.Assignments(map[string]any{
					"balance": gorm.Expr("contributor_balances.balance + EXCLUDED.balance"),
				}),
			}).Create(&contributorBalanceModel{
				SongID:  distribution.SongID,
				Account: share.Account,
				Balance: share.Share,
			}).Error; err != nil {
				return err
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "account"}},
				DoUpdates: clause.Assignments(map[string]any{
					"balance": gorm.Expr("contributor_total_balances.balance + EXCLUDED.balance"),
				}),
			}).Create(&totalBalanceModel{
				Account: share.Account,
				Balance: share.Share,
			}).Error; err != nil {
				return err
			}
		}

		record := royaltyRecordModel{
			SongID:      distribution.SongID,
			PaymentID:   paymentID,
			Amount:      distribution.Amount,
			Distributor: distribution.Distributor,
			OccurredAt:  distribution.OccurredAt.UTC(),
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		return tx.Model(&ledgerStateModel{}).
			Where("id = ?", ledgerStateRowID).
			Update("payment_counter", paymentID+1).Error
	})
	if err != nil {
		return 0, r.logError("royalty_repo_apply_distribution_failed", err,
			"song_id", distribution.SongID,
			"amount", distribution.Amount,
		)
	}
	return paymentID, nil
}

func (r *Repository) GetRoyaltyRecord(ctx context.Context, songID uint64, paymentID uint64) (entities.RoyaltyRecord, error) {
	var row royaltyRecordModel
	if err := r.db.WithContext(ctx).
		First(&row, "song_id = ? AND payment_id = ?", songID, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.RoyaltyRecord{}, domainerrors.ErrRoyaltyNotFound
		}
		return entities.RoyaltyRecord{}, r.logError("royalty_repo_get_record_failed", err,
			"song_id", songID,
			"payment_id", paymentID,
		)
	}
	return entities.RoyaltyRecord{
		SongID:      row.SongID,
		PaymentID:   row.PaymentID,
		Amount:      row.Amount,
		Distributor: row.Distributor,
		OccurredAt:  row.OccurredAt,
	}, nil
}

func (r *Repository) GetContributorBalance(ctx context.Context, songID uint64, account string) (int64, error) {
	var row contributorBalanceModel
	if err := r.db.WithContext(ctx).
		First(&row, "song_id = ? AND account = ?", songID, strings.TrimSpace(account)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, r.logError("royalty_repo_get_balance_failed", err,
			"song_id", songID,
			"account", strings.TrimSpace(account),
		)
	}
	return row.Balance, nil
}

func (r *Repository) GetTotalBalance(ctx context.Context, account string) (int64, error) {
	var row totalBalanceModel
	if err := r.db.WithContext(ctx).
		First(&row, "account = ?", strings.TrimSpace(account)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, r.logError("royalty_repo_get_total_balance_failed", err,
			"account", strings.TrimSpace(account),
		)
	}
	return row.Balance, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := royaltyOutboxModel{
		OutboxID:     strings.TrimSpace(envelope.EventID),
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.EntityID),
		Payload:      payload,
		Status:       outbox.StatusPending,
		CreatedAt:    envelope.OccurredAtUTC.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			r.logWarn("royalty_repo_append_outbox_duplicate",
				"outbox_id", row.OutboxID,
			)
			return nil
		}
		return r.logError("royalty_repo_append_outbox_failed", err,
			"outbox_id", row.OutboxID,
		)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []royaltyOutboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outbox.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("royalty_repo_list_pending_outbox_failed", err,
			"limit", limit,
		)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      append([]byte(nil), row.Payload...),
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&royaltyOutboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outbox.StatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("royalty_repo_mark_outbox_published_failed", result.Error,
			"outbox_id", strings.TrimSpace(outboxID),
		)
	}
	if result.RowsAffected == 0 {
		r.logWarn("royalty_repo_mark_outbox_published_not_found",
			"outbox_id", strings.TrimSpace(outboxID),
		)
		return domainerrors.ErrRoyaltyNotFound
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+7)
	fields = append(fields,
		"event", event,
		"module", "finance-core/royalty-ledger",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("royalty repository operation failed", fields...)
	return err
}

func (r *Repository) logWarn(event string, attrs ...any) {
	fields := make([]any, 0, len(attrs)+5)
	fields = append(fields,
		"event", event,
		"module", "finance-core/royalty-ledger",
		"layer", "adapter",
	)
	fields = append(fields, attrs...)
	r.logger.Warn("royalty repository warning", fields...)
}

type songModel struct {
	ID           uint64    `gorm:"column:id;primaryKey"`
	Title        string    `gorm:"column:title"`
	Artist       string    `gorm:"column:artist"`
	IPFSHash     string    `gorm:"column:ipfs_hash"`
	Contributors []byte    `gorm:"column:contributors;type:jsonb"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (songModel) TableName() string {
	return "songs"
}

func (m songModel) toEntity() (entities.Song, error) {
	var contributors []entities.Contributor
	if len(m.Contributors) > 0 {
		if err := json.Unmarshal(m.Contributors, &contributors); err != nil {
			return entities.Song{}, err
		}
	}
	return entities.Song{
		ID:           m.ID,
		Title:        m.Title,
		Artist:       m.Artist,
		IPFSHash:     m.IPFSHash,
		Contributors: contributors,
		CreatedAt:    m.CreatedAt,
	}, nil
}

type royaltyRecordModel struct {
	SongID      uint64    `gorm:"column:song_id;primaryKey"`
	PaymentID   uint64    `gorm:"column:payment_id;primaryKey"`
	Amount      int64     `gorm:"column:amount"`
	Distributor string    `gorm:"column:distributor"`
	OccurredAt  time.Time `gorm:"column:occurred_at"`
}

func (royaltyRecordModel) TableName() string {
	return "royalty_records"
}

type contributorBalanceModel struct {
	SongID  uint64 `gorm:"column:song_id;primaryKey"`
	Account string `gorm:"column:account;primaryKey"`
	Balance int64  `gorm:"column:balance"`
}

func (contributorBalanceModel) TableName() string {
	return "contributor_balances"
}

type totalBalanceModel struct {
	Account string `gorm:"column:account;primaryKey"`
	Balance int64  `gorm:"column:balance"`
}

func (totalBalanceModel) TableName() string {
	return "contributor_total_balances"
}

type ledgerStateModel struct {
	ID             int    `gorm:"column:id;primaryKey"`
	Admin          string `gorm:"column:admin"`
	Paused         bool   `gorm:"column:paused"`
	PaymentCounter uint64 `gorm:"column:payment_counter"`
	SongCounter    uint64 `gorm:"column:song_counter"`
}

func (ledgerStateModel) TableName() string {
	return "ledger_state"
}

type royaltyOutboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload;type:jsonb"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (royaltyOutboxModel) TableName() string {
	return "royalty_outbox"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.Repository = (*Repository)(nil)
var _ ports.OutboxWriter = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
