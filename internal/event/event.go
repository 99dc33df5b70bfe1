package event

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Event represents one calendar entry of the events page
type Event struct {
	Start time.Time `json:"start"`
	Text  string    `json:"-"` // full text content of the list item
	Title string    `json:"title"`
	URL   string    `json:"url,omitempty"`

	node *goquery.Selection
}

// NewEvent wraps a list item selection. Start is left zero; callers set it
// once the item's datetime has been parsed.
func NewEvent(node *goquery.Selection) *Event {
	evt := &Event{
		Text: node.Text(),
		node: node,
	}

	if link := evt.Link(); link.Length() > 0 {
		evt.Title = strings.Join(strings.Fields(link.Text()), " ")
		evt.URL, _ = link.Attr("href")
	}

	return evt
}

// ID returns a deterministic identifier built from the start time, title and link
func (e *Event) ID() string {
	h := sha1.New()
	h.Write([]byte(e.Start.UTC().Format(time.RFC3339) + "|" + e.Title + "|" + e.URL))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Node returns the underlying list item selection
func (e *Event) Node() *goquery.Selection {
	return e.node
}

// Link returns the first link inside the item's first descriptive block.
// The returned selection is empty when either element is missing.
func (e *Event) Link() *goquery.Selection {
	if e.node == nil {
		return &goquery.Selection{}
	}
	return e.node.Find("div").First().Find("a").First()
}

// IsUpcoming reports whether the event starts strictly after now
func (e *Event) IsUpcoming(now time.Time) bool {
	if e.Start.IsZero() {
		return false
	}
	return e.Start.After(now)
}
