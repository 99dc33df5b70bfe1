package calendar

import (
	"fmt"
	"os"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/pfrederiksen/ticketwatch/internal/event"
)

const (
	ProductID = "-//ticketwatch//ticketwatch//ES"

	// DefaultDuration is used for DTEND since the page only publishes a start time
	DefaultDuration = 2 * time.Hour
)

// Build creates a calendar with one VEVENT per distinct event.
// Items repeated by nested event lists share an ID and are added once.
func Build(events []*event.Event, now time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetMethod(ics.MethodPublish)

	seen := make(map[string]bool, len(events))
	for _, evt := range events {
		id := evt.ID()
		if seen[id] {
			continue
		}
		seen[id] = true

		vevent := cal.AddEvent(id + "@ticketwatch")
		vevent.SetDtStampTime(now.UTC())
		vevent.SetStartAt(evt.Start.UTC())
		vevent.SetEndAt(evt.Start.Add(DefaultDuration).UTC())
		vevent.SetSummary(summary(evt))
		if evt.URL != "" {
			vevent.SetURL(evt.URL)
		}
		if text := strings.Join(strings.Fields(evt.Text), " "); text != "" {
			vevent.SetDescription(text)
		}
	}

	return cal
}

// GenerateICS serializes the events as an iCalendar document
func GenerateICS(events []*event.Event, now time.Time) string {
	return Build(events, now).Serialize()
}

// WriteFile writes the events to path as an .ics file
func WriteFile(path string, events []*event.Event, now time.Time) error {
	if err := os.WriteFile(path, []byte(GenerateICS(events, now)), 0644); err != nil {
		return fmt.Errorf("writing calendar file: %w", err)
	}
	return nil
}

func summary(evt *event.Event) string {
	if evt.Title != "" {
		return evt.Title
	}
	return "Evento"
}
