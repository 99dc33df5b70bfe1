package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/ticketwatch/internal/calendar"
	"github.com/pfrederiksen/ticketwatch/internal/event"
	"github.com/pfrederiksen/ticketwatch/internal/filter"
	"github.com/pfrederiksen/ticketwatch/internal/logger"
	"github.com/pfrederiksen/ticketwatch/internal/notifier"
)

// PageFetcher retrieves the raw markup of a page
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// Pipeline runs one fetch, extract, filter and notify cycle
type Pipeline struct {
	Fetcher  PageFetcher
	Notifier notifier.Notifier
	Now      func() time.Time

	// ICSFile, when set, receives the available events as an .ics file
	ICSFile string

	// DryRun marks a Notifier that only prints; the result is never Notified
	DryRun bool
}

// Run checks url once. Empty stage results end the run without error.
func (p *Pipeline) Run(ctx context.Context, url string) (*OutputResult, error) {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	result := &OutputResult{
		CheckedAt: now().UTC(),
		URL:       url,
		Events:    []*event.Event{},
		DryRun:    p.DryRun,
	}

	body, err := p.Fetcher.FetchPage(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching events page: %w", err)
	}

	upcoming, err := event.ExtractFromHTML(strings.NewReader(body), now())
	if err != nil {
		return nil, fmt.Errorf("extracting events: %w", err)
	}
	result.Upcoming = len(upcoming)
	if len(upcoming) == 0 {
		return result, nil
	}

	available := filter.Available(upcoming)
	result.Events = available
	result.EventCount = len(available)
	if len(available) == 0 {
		logger.Info("No available events", logger.Fields{"upcoming": len(upcoming)})
		return result, nil
	}

	if p.ICSFile != "" {
		if err := calendar.WriteFile(p.ICSFile, available, now()); err != nil {
			return nil, err
		}
		logger.Info("Calendar written", logger.Fields{"path": p.ICSFile, "events": len(available)})
	}

	if err := p.Notifier.Notify(ctx, available); err != nil {
		return nil, fmt.Errorf("notifying: %w", err)
	}
	result.Notified = !p.DryRun

	return result, nil
}
