// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DirectoryEventsQueue is the durable queue directory events are
// published to.
const DirectoryEventsQueue = "directory.events"

// EventType names what happened to which entity.
type EventType string

const (
	VenueCreated  EventType = "venue.created"
	VenueUpdated  EventType = "venue.updated"
	VenueDeleted  EventType = "venue.deleted"
	ArtistCreated EventType = "artist.created"
	ArtistUpdated EventType = "artist.updated"
	ArtistDeleted EventType = "artist.deleted"
	ShowCreated   EventType = "show.created"
)

// DirectoryEvent is published after a mutation has been committed.  It
// carries enough information for downstream consumers to log or notify
// without querying the primary database.
type DirectoryEvent struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	EntityID   int64     `json:"entity_id"`
	Name       string    `json:"name"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewDirectoryEvent stamps a new event with a random id and the current
// UTC time.
func NewDirectoryEvent(typ EventType, entityID int64, name string) DirectoryEvent {
	return DirectoryEvent{
		ID:         uuid.NewString(),
		Type:       typ,
		EntityID:   entityID,
		Name:       name,
		OccurredAt: time.Now().UTC(),
	}
}

// LogLine renders the event as one human-friendly activity log line.
func (e DirectoryEvent) LogLine() string {
	line := fmt.Sprintf("[%s] %s | id=%d | name=%q | event_id=%s",
		e.OccurredAt.UTC().Format(time.RFC3339), e.Type, e.EntityID, e.Name, e.ID)
	if e.Detail != "" {
		line += " | " + e.Detail
	}
	return line + "\n"
}
