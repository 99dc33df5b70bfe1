// Package filter decides which upcoming events still have tickets on sale.
//
// An event counts as sold out when its text content contains SoldOutPhrase,
// compared case-insensitively. No other availability signal is considered.
package filter

import (
	"strings"

	"github.com/pfrederiksen/ticketwatch/internal/event"
	"github.com/pfrederiksen/ticketwatch/internal/logger"
)

// SoldOutPhrase marks an event without tickets left
const SoldOutPhrase = "entradas agotadas"

// IsSoldOut reports whether the event text carries the sold-out phrase
func IsSoldOut(evt *event.Event) bool {
	return strings.Contains(strings.ToLower(evt.Text), SoldOutPhrase)
}

// Available returns the events that are not sold out, in their original order
func Available(events []*event.Event) []*event.Event {
	available := make([]*event.Event, 0, len(events))
	for _, evt := range events {
		if IsSoldOut(evt) {
			logger.Debug("Skipping sold out event", logger.Fields{"title": evt.Title})
			continue
		}
		available = append(available, evt)
	}

	logger.SetGauge("events.available", float64(len(available)))
	return available
}
