package queries_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"chorus/contexts/finance-core/royalty-ledger/adapters/memory"
	"chorus/contexts/finance-core/royalty-ledger/application/commands"
	"chorus/contexts/finance-core/royalty-ledger/application/queries"
	"chorus/contexts/finance-core/royalty-ledger/domain/entities"
	domainerrors "chorus/contexts/finance-core/royalty-ledger/domain/errors"
)

func newLedger(t *testing.T) (queries.UseCase, commands.UseCase) {
	t.Helper()
	store := memory.NewStore("deployer", []entities.Song{{
		ID:       1,
		Title:    "Test Song",
		Artist:   "deployer",
		IPFSHash: "QmTestHash1234567890123456789012345678901234",
		Contributors: []entities.Contributor{
			{Account: "wallet_1", Percentage: 60},
			{Account: "wallet_2", Percentage: 40},
		},
	}})
	return queries.UseCase{Repository: store}, commands.UseCase{
		Repository: store,
		Outbox:     store,
		Clock:      store,
		IDGen:      store,
		Mutations:  &sync.Mutex{},
	}
}

func TestGetSongReturnsContributors(t *testing.T) {
	q, _ := newLedger(t)

	song, err := q.GetSong(context.Background(), 1)
	if err != nil {
		t.Fatalf("get song failed: %v", err)
	}
	if song.Title != "Test Song" || len(song.Contributors) != 2 {
		t.Fatalf("unexpected song: %+v", song)
	}

	_, err = q.GetSong(context.Background(), 42)
	if !errors.Is(err, domainerrors.ErrInvalidSong) {
		t.Fatalf("expected ErrInvalidSong, got %v", err)
	}
}

func TestRoyaltyHistoryAbsenceIsNotAnError(t *testing.T) {
	q, c := newLedger(t)
	ctx := context.Background()

	record, err := q.RoyaltyHistory(ctx, 1, 0)
	if err != nil {
		t.Fatalf("history on empty ledger failed: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil record before any payment, got %+v", record)
	}

	paymentID, err := c.Distribute(ctx, commands.DistributeCommand{Caller: "payer", SongID: 1, Amount: 1000})
	if err != nil {
		t.Fatalf("distribute failed: %v", err)
	}

	record, err = q.RoyaltyHistory(ctx, 1, paymentID)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if record == nil || record.Amount != 1000 || record.Distributor != "payer" {
		t.Fatalf("unexpected record: %+v", record)
	}

	// Same payment id under a different song resolves to nothing.
	record, err = q.RoyaltyHistory(ctx, 2, paymentID)
	if err != nil || record != nil {
		t.Fatalf("expected nil record for wrong song, got %+v (err %v)", record, err)
	}
}

func TestBalancesDefaultToZero(t *testing.T) {
	q, c := newLedger(t)
	ctx := context.Background()

	balance, err := q.ContributorBalance(ctx, 1, "wallet_1")
	if err != nil || balance != 0 {
		t.Fatalf("expected zero balance before payments, got %d (err %v)", balance, err)
	}
	total, err := q.TotalBalance(ctx, "nobody")
	if err != nil || total != 0 {
		t.Fatalf("expected zero total for unknown account, got %d (err %v)", total, err)
	}

	if _, err := c.Distribute(ctx, commands.DistributeCommand{Caller: "payer", SongID: 1, Amount: 1000}); err != nil {
		t.Fatalf("distribute failed: %v", err)
	}

	// Account paths are whitespace-trimmed.
	balance, err = q.ContributorBalance(ctx, 1, "  wallet_1  ")
	if err != nil || balance != 600 {
		t.Fatalf("expected trimmed lookup to find 600, got %d (err %v)", balance, err)
	}
	total, err = q.TotalBalance(ctx, " wallet_2 ")
	if err != nil || total != 400 {
		t.Fatalf("expected wallet_2 total 400, got %d (err %v)", total, err)
	}
}

func TestLedgerStateSnapshot(t *testing.T) {
	q, c := newLedger(t)
	ctx := context.Background()

	state, err := q.LedgerState(ctx)
	if err != nil {
		t.Fatalf("ledger state failed: %v", err)
	}
	if state.Admin != "deployer" || state.Paused || state.PaymentCounter != 0 {
		t.Fatalf("unexpected initial state: %+v", state)
	}

	if _, err := c.Distribute(ctx, commands.DistributeCommand{Caller: "payer", SongID: 1, Amount: 1000}); err != nil {
		t.Fatalf("distribute failed: %v", err)
	}
	if err := c.Pause(ctx, "deployer"); err != nil {
		t.Fatalf("pause failed: %v", err)
	}

	state, err = q.LedgerState(ctx)
	if err != nil {
		t.Fatalf("ledger state failed: %v", err)
	}
	if !state.Paused || state.PaymentCounter != 1 {
		t.Fatalf("unexpected state after activity: %+v", state)
	}
}
