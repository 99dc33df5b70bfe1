package telegram

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/ticketwatch/internal/event"
)

// TicketEmoji prefixes every event line
const TicketEmoji = "🎟️"

var xmlnsAttr = regexp.MustCompile(`\s+xmlns(:[\w-]+)?="[^"]*"`)

// FormatAvailability builds the availability message: a header with the number
// of events followed by one line per event.
func FormatAvailability(events []*event.Event) string {
	lines := make([]string, 0, len(events))
	for _, evt := range events {
		lines = append(lines, formatEventLine(evt))
	}

	return fmt.Sprintf("Hay <b>%d</b> eventos disponibles:\n%s", len(events), strings.Join(lines, "\n"))
}

// formatEventLine renders the event's descriptive link markup. Events without a
// link fall back to their escaped, whitespace-collapsed text.
func formatEventLine(evt *event.Event) string {
	link := evt.Link()
	if link.Length() > 0 {
		if markup, err := goquery.OuterHtml(link); err == nil {
			return TicketEmoji + " " + stripNamespace(markup)
		}
	}

	text := strings.Join(strings.Fields(evt.Text), " ")
	if text == "" {
		text = evt.Title
	}
	return TicketEmoji + " " + html.EscapeString(text)
}

// stripNamespace removes namespace declarations from serialized markup
func stripNamespace(markup string) string {
	return xmlnsAttr.ReplaceAllString(markup, "")
}
