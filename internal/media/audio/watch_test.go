package audio

import (
	"context"
	"testing"
	"time"
)

func TestWatchEmitsTaggedEvent(t *testing.T) {
	events := Watch(context.Background(), &fakeSource{seconds: 9}, "/audio/a.mp3")
	select {
	case ev, ok := <-events:
		if !ok {
			t.Fatal("channel closed without event")
		}
		if ev.AudioRef != "/audio/a.mp3" || ev.DurationSeconds != 9 || ev.Err != nil {
			t.Fatalf("unexpected event: %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	if _, ok := <-events; ok {
		t.Fatal("expected channel to close after one event")
	}
}

func TestWatchCancelledEmitsNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	events := Watch(ctx, &fakeSource{seconds: 9, delay: time.Minute}, "a.mp3")
	cancel()
	select {
	case ev, ok := <-events:
		if ok {
			t.Fatalf("expected no event after cancel, got %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}
