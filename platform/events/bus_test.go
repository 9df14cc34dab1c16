package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"atlascasa_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
}

func (testEvent) EventName() string { return "test.event" }

func TestPublishSurvivesCallerCancellation(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	canceled := make(chan struct{})
	got := make(chan error, 1)
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, _ Event) error {
		<-canceled
		got <- ctx.Err()
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	bus.Publish(ctx, testEvent{BaseEvent: NewBaseEvent()})
	cancel()
	close(canceled)

	select {
	case err := <-got:
		if err != nil {
			t.Fatalf("handler context was canceled with the publisher: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("handler never ran")
	}
}

func TestPublishSyncRunsInlineAndReturnsFirstError(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	calls := 0
	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error {
		calls++
		return errors.New("boom")
	}))
	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error {
		calls++
		return nil
	}))

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent()})
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected the first handler error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected dispatch to stop at the failing handler, ran %d", calls)
	}
}
