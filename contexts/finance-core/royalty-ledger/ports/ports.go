package ports

import (
	"context"
	"time"

	"chorus/contexts/finance-core/royalty-ledger/domain/entities"
	"chorus/internal/shared/events"
	"chorus/internal/shared/outbox"
)

type Repository interface {
	CreateSong(ctx context.Context, song entities.Song) (uint64, error)
	GetSong(ctx context.Context, songID uint64) (entities.Song, error)

	GetLedgerState(ctx context.Context) (entities.LedgerState, error)
	SetPaused(ctx context.Context, paused bool) error
	SetAdmin(ctx context.Context, admin string) error

	// ApplyDistribution applies balance deltas, appends the royalty record,
	// and allocates the payment id from the global counter as one atomic
	// unit. Readers never observe a partially applied distribution.
	ApplyDistribution(ctx context.Context, distribution entities.Distribution) (uint64, error)

	GetRoyaltyRecord(ctx context.Context, songID uint64, paymentID uint64) (entities.RoyaltyRecord, error)
	GetContributorBalance(ctx context.Context, songID uint64, account string) (int64, error)
	GetTotalBalance(ctx context.Context, account string) (int64, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope = events.Envelope

type OutboxMessage = outbox.Message

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
