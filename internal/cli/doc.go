// Package cli implements the command-line interface for ticketwatch.
//
// The cli package provides the Cobra root command. A run resolves its options,
// fetches the events page, keeps upcoming events with tickets still on sale and
// sends one Telegram summary, then reports the outcome as text or JSON.
package cli
