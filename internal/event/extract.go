package event

import (
	"fmt"
	"io"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/ticketwatch/internal/logger"
)

// ListSelector matches the containers holding the event entries
const ListSelector = ".event-list"

// ExtractFromHTML parses markup and returns its upcoming events
func ExtractFromHTML(r io.Reader, now time.Time) ([]*Event, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return Extract(doc, now), nil
}

// Extract collects the list items of every event-list container in document
// order and keeps those whose datetime is strictly after now.
func Extract(doc *goquery.Document, now time.Time) []*Event {
	items := make([]*goquery.Selection, 0)
	doc.Find(ListSelector).Each(func(_ int, list *goquery.Selection) {
		list.Find("li").Each(func(_ int, li *goquery.Selection) {
			items = append(items, li)
		})
	})

	logger.SetGauge("events.found", float64(len(items)))
	if len(items) == 0 {
		logger.Info("No events found", nil)
		return []*Event{}
	}

	upcoming := make([]*Event, 0, len(items))
	for _, li := range items {
		timeEl := li.Find("time").First()
		if timeEl.Length() == 0 {
			continue
		}

		evt := NewEvent(li)
		evt.Start = ParseDateTime(timeEl.AttrOr("datetime", ""))
		if !evt.IsUpcoming(now) {
			continue
		}
		upcoming = append(upcoming, evt)
	}

	logger.SetGauge("events.future", float64(len(upcoming)))
	if len(upcoming) == 0 {
		logger.Info("No future events", logger.Fields{"items": len(items)})
		return []*Event{}
	}

	logger.Debug("Extracted upcoming events", logger.Fields{
		"items":    len(items),
		"upcoming": len(upcoming),
	})

	return upcoming
}
