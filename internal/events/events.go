// Package events defines the domain events emitted by the scoring
// service and the observer interface the caller supplies to receive
// them.
//
// There is no global listener registry: emitters are constructed by the
// caller and injected, so the CLI can pass a no-op while the server wires
// a channel feeding its notification layer.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/verdant-io/verdant/internal/disclosure"
	"github.com/verdant-io/verdant/internal/logging"
)

// FrameworkSaved is emitted after a framework save has persisted new
// progress and the aggregate has been recomputed.
type FrameworkSaved struct {
	// ID is a ULID, sortable by emission time.
	ID string `json:"id"`

	CompanyID   uuid.UUID              `json:"company_id"`
	FrameworkID disclosure.FrameworkID `json:"framework_id"`
	Progress    int                    `json:"progress"`
	Score       int                    `json:"score"`
	OccurredAt  time.Time              `json:"occurred_at"`
}

// NewEventID returns a fresh ULID string.
func NewEventID() string {
	return ulid.Make().String()
}

// Emitter receives domain events. Implementations must not block the
// save path.
type Emitter interface {
	FrameworkSaved(ctx context.Context, ev FrameworkSaved)
}

// Nop is an Emitter that discards events. Used by one-shot CLI commands.
type Nop struct{}

// FrameworkSaved implements Emitter.
func (Nop) FrameworkSaved(context.Context, FrameworkSaved) {}

// Channel is an Emitter backed by a buffered channel, feeding the
// notification layer in the serve path. Events are dropped with a warning
// when the buffer is full; notification delivery is best-effort and must
// never stall a save.
type Channel struct {
	ch chan FrameworkSaved
}

// NewChannel creates a channel emitter with the given buffer size.
func NewChannel(buffer int) *Channel {
	return &Channel{ch: make(chan FrameworkSaved, buffer)}
}

// Events exposes the receive side for the notification consumer.
func (c *Channel) Events() <-chan FrameworkSaved {
	return c.ch
}

// FrameworkSaved implements Emitter.
func (c *Channel) FrameworkSaved(ctx context.Context, ev FrameworkSaved) {
	select {
	case c.ch <- ev:
	default:
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("event_id", ev.ID).
			Str("framework", string(ev.FrameworkID)).
			Msg("event buffer full, notification dropped")
	}
}

// Close closes the event channel. Call only after all saves have
// finished.
func (c *Channel) Close() {
	close(c.ch)
}
