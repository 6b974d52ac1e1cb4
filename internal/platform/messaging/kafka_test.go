package messaging_test

import (
	"context"
	"testing"
	"time"

	"chorus/internal/platform/messaging"
	"chorus/internal/shared/events"
)

func TestPublishReachesSubscriber(t *testing.T) {
	bus, err := messaging.NewKafka([]string{"localhost:9092"}, nil)
	if err != nil {
		t.Fatalf("new kafka failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan events.Envelope, 1)
	err = bus.Subscribe(ctx, "royalty.distributed", "ledger-test-cg", func(_ context.Context, event events.Envelope) error {
		received <- event
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	err = bus.Publish(ctx, "royalty.distributed", events.Envelope{
		EventID:   "evt-1",
		EventType: "royalty.distributed",
		EntityID:  "1",
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case event := <-received:
		if event.EventID != "evt-1" {
			t.Fatalf("unexpected event: %+v", event)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("subscriber did not receive event")
	}
}

func TestPublishIgnoresForeignTopics(t *testing.T) {
	bus, err := messaging.NewKafka(nil, nil)
	if err != nil {
		t.Fatalf("new kafka failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan events.Envelope, 1)
	err = bus.Subscribe(ctx, "royalty.distributed", "ledger-test-cg", func(_ context.Context, event events.Envelope) error {
		received <- event
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	if err := bus.Publish(ctx, "other.topic", events.Envelope{EventID: "evt-2"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case event := <-received:
		t.Fatalf("subscriber must not receive foreign topic, got %+v", event)
	case <-time.After(100 * time.Millisecond):
	}
}
