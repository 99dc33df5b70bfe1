// Package scraper fetches the events page that ticketwatch checks.
//
// It issues a single GET with the service User-Agent and returns the raw body
// for the event extractor. Non-200 responses are reported as errors; there is
// no retry.
package scraper
