package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	MovieCreated  EventType = "movie.created"
	MovieUpdated  EventType = "movie.updated"
	MovieDeleted  EventType = "movie.deleted"
	LinkCreated   EventType = "link.created"
	LinkDeleted   EventType = "link.deleted"
	LinksReplaced EventType = "links.replaced"
)

// Event describes a committed change to the catalog.
type Event struct {
	ID      string    `json:"id"`
	Type    EventType `json:"type"`
	MovieID int64     `json:"movie_id"`
	LinkID  *int64    `json:"link_id,omitempty"`
	At      time.Time `json:"at"`
}

func NewMovieEvent(t EventType, movieID int64) Event {
	return Event{
		ID:      uuid.NewString(),
		Type:    t,
		MovieID: movieID,
		At:      time.Now().UTC(),
	}
}

func NewLinkEvent(t EventType, movieID, linkID int64) Event {
	e := NewMovieEvent(t, movieID)
	e.LinkID = &linkID
	return e
}
