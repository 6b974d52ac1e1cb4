package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	domainerrors "chorus/contexts/finance-core/royalty-ledger/domain/errors"
)

func TestCodeMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domainerrors.ErrUnauthorized, 100},
		{domainerrors.ErrLedgerPaused, 101},
		{domainerrors.ErrInvalidSong, 102},
		{domainerrors.ErrInvalidSongInput, 102},
		{domainerrors.ErrInvalidAmount, 103},
		{domainerrors.ErrDistributionFailed, 106},
	}
	for _, tc := range cases {
		code, ok := domainerrors.Code(tc.err)
		if !ok || code != tc.code {
			t.Fatalf("Code(%v) = %d, %t; want %d", tc.err, code, ok, tc.code)
		}
	}
}

func TestCodeResolvesWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("distribute song 1: %w", domainerrors.ErrLedgerPaused)
	code, ok := domainerrors.Code(wrapped)
	if !ok || code != domainerrors.CodePaused {
		t.Fatalf("Code(wrapped) = %d, %t; want %d", code, ok, domainerrors.CodePaused)
	}
}

func TestCodeRejectsForeignErrors(t *testing.T) {
	if code, ok := domainerrors.Code(stderrors.New("boom")); ok {
		t.Fatalf("expected no code for foreign error, got %d", code)
	}
	if code, ok := domainerrors.Code(domainerrors.ErrRoyaltyNotFound); ok {
		t.Fatalf("absence is not part of the numeric contract, got %d", code)
	}
}
