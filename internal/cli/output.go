package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/ticketwatch/internal/event"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult summarizes a run
type OutputResult struct {
	CheckedAt  time.Time      `json:"checked_at"`
	URL        string         `json:"url"`
	Upcoming   int            `json:"upcoming"`
	EventCount int            `json:"event_count"`
	Events     []*event.Event `json:"events"`
	Notified   bool           `json:"notified"`
	DryRun     bool           `json:"dry_run,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult) error {
	if result.Upcoming == 0 {
		fmt.Fprintln(w, "No upcoming events found.")
		return nil
	}

	if result.EventCount == 0 {
		fmt.Fprintf(w, "%d upcoming events, all sold out.\n", result.Upcoming)
		return nil
	}

	for _, evt := range result.Events {
		title := evt.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(w, "%s  %s", evt.Start.Local().Format("2006-01-02 15:04"), title)
		if evt.URL != "" {
			fmt.Fprintf(w, "  %s", evt.URL)
		}
		fmt.Fprintln(w)
	}

	status := "notification not sent"
	switch {
	case result.DryRun:
		status = "dry run"
	case result.Notified:
		status = "notification sent"
	}
	fmt.Fprintf(w, "\nTotal: %d available of %d upcoming (%s)\n", result.EventCount, result.Upcoming, status)

	return nil
}
