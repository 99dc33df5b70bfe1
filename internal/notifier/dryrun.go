package notifier

import (
	"context"
	"fmt"
	"io"

	"github.com/pfrederiksen/ticketwatch/internal/event"
	"github.com/pfrederiksen/ticketwatch/internal/telegram"
)

// DryRunNotifier prints the message that would be sent without posting it
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a new dry-run notifier writing to out
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	return &DryRunNotifier{out: out}
}

// Notify prints the message
func (n *DryRunNotifier) Notify(_ context.Context, events []*event.Event) error {
	if len(events) == 0 {
		return nil
	}

	msg := telegram.FormatAvailability(events)
	fmt.Fprintln(n.out, "DRY RUN MODE - Would send message:")
	fmt.Fprintln(n.out, msg)
	fmt.Fprintf(n.out, "\n(Length: %d characters)\n", len(msg))
	return nil
}
