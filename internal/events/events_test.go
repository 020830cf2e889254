package events

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdant-io/verdant/internal/disclosure"
	"github.com/verdant-io/verdant/internal/logging"
)

func TestChannelDelivers(t *testing.T) {
	c := NewChannel(4)
	ev := FrameworkSaved{
		ID:          NewEventID(),
		CompanyID:   uuid.New(),
		FrameworkID: disclosure.FrameworkTCFD,
		Progress:    20,
		Score:       20,
	}
	c.FrameworkSaved(context.Background(), ev)
	c.Close()

	var received []FrameworkSaved
	for got := range c.Events() {
		received = append(received, got)
	}
	require.Len(t, received, 1)
	assert.Equal(t, ev, received[0])
}

func TestChannelDropsWhenFull(t *testing.T) {
	c := NewChannel(1)
	ctx := context.Background()

	// Second emit must not block even with no consumer.
	c.FrameworkSaved(ctx, FrameworkSaved{ID: NewEventID()})
	c.FrameworkSaved(ctx, FrameworkSaved{ID: NewEventID()})
	c.Close()

	var count int
	for range c.Events() {
		count++
	}
	assert.Equal(t, 1, count)
}

func TestChannelDropLogsWarning(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctx := logging.WithContext(context.Background(), logger)

	c := NewChannel(1)
	c.FrameworkSaved(ctx, FrameworkSaved{ID: NewEventID()})
	c.FrameworkSaved(ctx, FrameworkSaved{ID: NewEventID(), FrameworkID: disclosure.FrameworkGRI})
	c.Close()

	assert.Contains(t, buf.String(), "notification dropped")
	assert.Contains(t, buf.String(), string(disclosure.FrameworkGRI))
}

func TestEventIDsAreSortable(t *testing.T) {
	first := NewEventID()
	second := NewEventID()
	assert.Len(t, first, 26)
	assert.LessOrEqual(t, first, second)
}
