package events

import (
	"context"
	"testing"
	"time"

	events "filmoasis/src/modules/events/models"
)

func TestHubDeliversToAllSubscribers(t *testing.T) {
	t.Parallel()

	hub := NewHub(4)
	a, cancelA := hub.Subscribe()
	defer cancelA()
	b, cancelB := hub.Subscribe()
	defer cancelB()

	e := events.NewMovieEvent(events.MovieCreated, 42)
	hub.Publish(context.Background(), e)

	for name, ch := range map[string]<-chan events.Event{"a": a, "b": b} {
		select {
		case got := <-ch:
			if got.ID != e.ID || got.MovieID != 42 || got.Type != events.MovieCreated {
				t.Errorf("subscriber %s got %+v", name, got)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %s received nothing", name)
		}
	}
}

func TestHubDropsWhenSubscriberIsFull(t *testing.T) {
	t.Parallel()

	hub := NewHub(1)
	ch, cancel := hub.Subscribe()
	defer cancel()

	hub.Publish(context.Background(), events.NewMovieEvent(events.MovieCreated, 1))
	hub.Publish(context.Background(), events.NewMovieEvent(events.MovieCreated, 2))

	got := <-ch
	if got.MovieID != 1 {
		t.Errorf("first event movie = %d, want 1", got.MovieID)
	}
	select {
	case extra := <-ch:
		t.Errorf("expected second event to be dropped, got %+v", extra)
	default:
	}
}

func TestHubCancelUnsubscribes(t *testing.T) {
	t.Parallel()

	hub := NewHub(1)
	ch, cancel := hub.Subscribe()
	if hub.Subscribers() != 1 {
		t.Fatalf("Subscribers() = %d, want 1", hub.Subscribers())
	}

	cancel()
	cancel()

	if hub.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d, want 0", hub.Subscribers())
	}
	if _, ok := <-ch; ok {
		t.Error("expected channel to be closed")
	}

	hub.Publish(context.Background(), events.NewMovieEvent(events.MovieDeleted, 1))
}

func TestHubClose(t *testing.T) {
	t.Parallel()

	hub := NewHub(1)
	ch, cancel := hub.Subscribe()
	hub.Close()
	cancel()

	if _, ok := <-ch; ok {
		t.Error("expected channel to be closed")
	}

	late, _ := hub.Subscribe()
	if _, ok := <-late; ok {
		t.Error("expected subscription after Close to be closed")
	}
}

type recorder struct {
	got []events.Event
}

func (r *recorder) Publish(_ context.Context, e events.Event) {
	r.got = append(r.got, e)
}

func TestMultiPublishesToEach(t *testing.T) {
	t.Parallel()

	a, b := &recorder{}, &recorder{}
	m := Multi{a, nil, b}
	m.Publish(context.Background(), events.NewLinkEvent(events.LinkCreated, 3, 9))

	if len(a.got) != 1 || len(b.got) != 1 {
		t.Fatalf("got %d and %d events, want 1 and 1", len(a.got), len(b.got))
	}
	if a.got[0].LinkID == nil || *a.got[0].LinkID != 9 {
		t.Errorf("link id = %v, want 9", a.got[0].LinkID)
	}
}
