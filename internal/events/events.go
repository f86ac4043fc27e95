// Package events publishes listing change notifications. Delivery is best
// effort: a failed publish is logged and never undoes the committed change.
package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fyyur/internal/logger"

	"github.com/google/uuid"
)

const (
	VenueCreated  = "venue.created"
	VenueUpdated  = "venue.updated"
	VenueDeleted  = "venue.deleted"
	ArtistCreated = "artist.created"
	ArtistUpdated = "artist.updated"
	ShowCreated   = "show.created"
)

// Event is one change to a listing.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	EntityID   int64     `json:"entity_id"`
	Name       string    `json:"name,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data,omitempty"`
}

// New stamps an event of type typ with a fresh id and the current time.
func New(typ string, entityID int64, name string, data any) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       typ,
		EntityID:   entityID,
		Name:       name,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Kind is the entity part of the event type, "venue" for "venue.created".
func (e Event) Kind() string {
	kind, _, _ := strings.Cut(e.Type, ".")
	return kind
}

// Key is the partition key, so every event of one entity lands in order.
func (e Event) Key() string {
	return fmt.Sprintf("%s:%d", e.Kind(), e.EntityID)
}

type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}

// Nop drops every event. Used when Kafka is disabled.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

// Emit publishes evt and logs the outcome instead of returning it.
func Emit(ctx context.Context, p Publisher, log *logger.Logger, evt Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, evt); err != nil {
		if log != nil {
			log.Error("KAFKA", fmt.Sprintf("Failed to publish %s for %s: %v", evt.Type, evt.Key(), err))
		}
		return
	}
	if log != nil {
		log.LogListing(evt.Type, evt.Kind(), evt.EntityID, "change notification published")
	}
}
