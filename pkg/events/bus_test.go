package events

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestBasicPublishSubscribe(t *testing.T) {
	bus := NewBus()
	defer bus.Shutdown()

	sub, err := bus.Subscribe(context.Background(), TopicScene)
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	bus.Publish(Event{Kind: NodeAdded, NodeID: 1, NodeType: "attacker"})

	select {
	case ev := <-sub.Channel():
		if ev.Kind != NodeAdded || ev.NodeID != 1 {
			t.Errorf("got %+v, want node_added for node 1", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for event")
	}

	sub.Unsubscribe()
	if n := bus.SubscriberCount(TopicScene); n != 0 {
		t.Errorf("SubscriberCount = %d after Unsubscribe, want 0", n)
	}
}

func TestTopicRouting(t *testing.T) {
	bus := NewBus()
	defer bus.Shutdown()

	attack, err := bus.Subscribe(context.Background(), TopicAttack)
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	bus.Publish(Event{Kind: ConnectionAdded})
	bus.Publish(Event{Kind: HopFired, Hop: 0})

	select {
	case ev := <-attack.Channel():
		if ev.Kind != HopFired {
			t.Errorf("attack subscriber got %s, want hop_fired", ev.Kind)
		}
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for event")
	}

	select {
	case ev := <-attack.Channel():
		t.Errorf("unexpected second event %+v", ev)
	default:
	}
}

func TestKindTopic(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{NodeAdded, TopicScene},
		{ConnectionRejected, TopicScene},
		{EdgeGestureStarted, TopicScene},
		{AttackStarted, TopicAttack},
		{AttackFinished, TopicAttack},
		{AttackCanceled, TopicAttack},
	}
	for _, tt := range tests {
		if got := tt.kind.Topic(); got != tt.want {
			t.Errorf("%s.Topic() = %s, want %s", tt.kind, got, tt.want)
		}
	}
}

func TestPublishDoesNotBlockWhenBufferFull(t *testing.T) {
	bus := NewBus()
	defer bus.Shutdown()

	if _, err := bus.Subscribe(context.Background(), TopicScene); err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriptionBuffer*3; i++ {
			bus.Publish(Event{Kind: NodeAdded})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}
}

func TestContextCancelUnsubscribes(t *testing.T) {
	bus := NewBus()
	defer bus.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := bus.Subscribe(ctx, TopicAttack)
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	cancel()

	select {
	case _, ok := <-sub.Channel():
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestSubscribeAfterShutdown(t *testing.T) {
	bus := NewBus()
	bus.Shutdown()
	bus.Shutdown() // idempotent

	if _, err := bus.Subscribe(context.Background(), TopicScene); !errors.Is(err, ErrBusClosed) {
		t.Errorf("Subscribe after Shutdown error = %v, want ErrBusClosed", err)
	}
	bus.Publish(Event{Kind: NodeAdded})
}
