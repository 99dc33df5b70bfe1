package notifier

import (
	"context"

	"github.com/pfrederiksen/ticketwatch/internal/event"
)

// Notifier defines the interface for delivering available events
type Notifier interface {
	// Notify delivers one summary for the given non-empty events
	Notify(ctx context.Context, events []*event.Event) error
}
