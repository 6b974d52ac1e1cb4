package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"chorus/contexts/finance-core/royalty-ledger/adapters/memory"
	"chorus/contexts/finance-core/royalty-ledger/domain/entities"
	domainerrors "chorus/contexts/finance-core/royalty-ledger/domain/errors"
	"chorus/contexts/finance-core/royalty-ledger/ports"
)

func seededStore() *memory.Store {
	return memory.NewStore("deployer", []entities.Song{{
		ID:       1,
		Title:    "Test Song",
		Artist:   "deployer",
		IPFSHash: "QmTestHash1234567890123456789012345678901234",
		Contributors: []entities.Contributor{
			{Account: "wallet_1", Percentage: 60},
			{Account: "wallet_2", Percentage: 40},
		},
	}})
}

func TestCreateSongContinuesAfterSeededIDs(t *testing.T) {
	store := memory.NewStore("deployer", []entities.Song{{ID: 5, Title: "Seeded"}})
	ctx := context.Background()

	id, err := store.CreateSong(ctx, entities.Song{Title: "Next"})
	if err != nil {
		t.Fatalf("create song failed: %v", err)
	}
	if id != 6 {
		t.Fatalf("expected id 6 after seed id 5, got %d", id)
	}

	id, err = store.CreateSong(ctx, entities.Song{Title: "After"})
	if err != nil || id != 7 {
		t.Fatalf("expected id 7, got %d (err %v)", id, err)
	}
}

func TestGetSongReturnsIsolatedCopy(t *testing.T) {
	store := seededStore()
	ctx := context.Background()

	song, err := store.GetSong(ctx, 1)
	if err != nil {
		t.Fatalf("get song failed: %v", err)
	}
	song.Contributors[0].Percentage = 1

	again, err := store.GetSong(ctx, 1)
	if err != nil {
		t.Fatalf("second get song failed: %v", err)
	}
	if again.Contributors[0].Percentage != 60 {
		t.Fatalf("stored song mutated through returned copy: %+v", again.Contributors)
	}
}

func TestApplyDistributionKeysBalancesPerSong(t *testing.T) {
	store := memory.NewStore("deployer", []entities.Song{
		{ID: 1, Title: "One"},
		{ID: 2, Title: "Two"},
	})
	ctx := context.Background()
	now := time.Now().UTC()

	apply := func(songID uint64, share int64) uint64 {
		t.Helper()
		paymentID, err := store.ApplyDistribution(ctx, entities.Distribution{
			SongID:      songID,
			Amount:      share,
			Distributor: "payer",
			Shares:      []entities.ContributorShare{{Account: "wallet_1", Share: share}},
			OccurredAt:  now,
		})
		if err != nil {
			t.Fatalf("apply distribution on song %d failed: %v", songID, err)
		}
		return paymentID
	}

	first := apply(1, 100)
	second := apply(2, 50)
	if first != 0 || second != 1 {
		t.Fatalf("expected global payment ids 0 and 1, got %d and %d", first, second)
	}

	balance, _ := store.GetContributorBalance(ctx, 1, "wallet_1")
	if balance != 100 {
		t.Fatalf("expected song 1 balance 100, got %d", balance)
	}
	balance, _ = store.GetContributorBalance(ctx, 2, "wallet_1")
	if balance != 50 {
		t.Fatalf("expected song 2 balance 50, got %d", balance)
	}
	total, _ := store.GetTotalBalance(ctx, "wallet_1")
	if total != 150 {
		t.Fatalf("expected total 150 across songs, got %d", total)
	}
}

func TestApplyDistributionUnknownSong(t *testing.T) {
	store := seededStore()

	_, err := store.ApplyDistribution(context.Background(), entities.Distribution{
		SongID: 99,
		Amount: 100,
		Shares: []entities.ContributorShare{{Account: "wallet_1", Share: 100}},
	})
	if !errors.Is(err, domainerrors.ErrInvalidSong) {
		t.Fatalf("expected ErrInvalidSong, got %v", err)
	}
	state, _ := store.GetLedgerState(context.Background())
	if state.PaymentCounter != 0 {
		t.Fatalf("counter must not advance for unknown song, got %d", state.PaymentCounter)
	}
}

func TestOutboxLifecycle(t *testing.T) {
	store := seededStore()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, eventID := range []string{"evt-1", "evt-2"} {
		err := store.AppendOutbox(ctx, ports.EventEnvelope{
			EventID:       eventID,
			EventType:     "royalty.distributed",
			EntityType:    "song",
			EntityID:      "1",
			OccurredAtUTC: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("append outbox %s failed: %v", eventID, err)
		}
	}

	// Duplicate event ids are absorbed.
	if err := store.AppendOutbox(ctx, ports.EventEnvelope{
		EventID:       "evt-1",
		EventType:     "royalty.distributed",
		OccurredAtUTC: base,
	}); err != nil {
		t.Fatalf("duplicate append failed: %v", err)
	}

	pending, err := store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending messages, got %d", len(pending))
	}
	if pending[0].OutboxID != "evt-1" || pending[1].OutboxID != "evt-2" {
		t.Fatalf("expected creation order, got %s then %s", pending[0].OutboxID, pending[1].OutboxID)
	}

	if err := store.MarkOutboxPublished(ctx, "evt-1", base.Add(time.Hour)); err != nil {
		t.Fatalf("mark published failed: %v", err)
	}
	pending, _ = store.ListPendingOutbox(ctx, 10)
	if len(pending) != 1 || pending[0].OutboxID != "evt-2" {
		t.Fatalf("expected only evt-2 pending, got %+v", pending)
	}

	if err := store.MarkOutboxPublished(ctx, "missing", base); !errors.Is(err, domainerrors.ErrRoyaltyNotFound) {
		t.Fatalf("expected ErrRoyaltyNotFound for unknown outbox id, got %v", err)
	}
}

func TestListPendingOutboxHonorsLimit(t *testing.T) {
	store := seededStore()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		err := store.AppendOutbox(ctx, ports.EventEnvelope{
			EventID:       string(rune('a' + i)),
			EventType:     "royalty.distributed",
			OccurredAtUTC: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	pending, err := store.ListPendingOutbox(ctx, 3)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("expected limit of 3, got %d", len(pending))
	}
	if pending[0].OutboxID != "a" {
		t.Fatalf("expected oldest first, got %s", pending[0].OutboxID)
	}
}
