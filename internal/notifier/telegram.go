package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/pfrederiksen/ticketwatch/internal/event"
	"github.com/pfrederiksen/ticketwatch/internal/logger"
	"github.com/pfrederiksen/ticketwatch/internal/telegram"
)

// MessageSender sends a formatted text message
type MessageSender interface {
	SendMessage(ctx context.Context, text string) error
}

// TelegramNotifier posts the availability summary to a Telegram chat
type TelegramNotifier struct {
	sender MessageSender
}

// NewTelegramNotifier creates a notifier backed by a Telegram client
func NewTelegramNotifier(sender MessageSender) *TelegramNotifier {
	return &TelegramNotifier{sender: sender}
}

// Notify formats the events and sends them as a single message
func (n *TelegramNotifier) Notify(ctx context.Context, events []*event.Event) error {
	if len(events) == 0 {
		return nil
	}

	msg := telegram.FormatAvailability(events)

	start := time.Now()
	if err := n.sender.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}
	logger.RecordTiming("notify", time.Since(start))
	logger.IncrCounter("notifications.sent")

	logger.Info("Notification sent", logger.Fields{
		"events": len(events),
		"length": len(msg),
	})
	return nil
}
