// Package event provides the event node type and extraction of upcoming events
// from an events page.
//
// Events are the <li> items found under every element carrying the "event-list"
// class. Each item is kept only when it carries a <time datetime="..."> element
// whose instant lies strictly after the reference time of the check.
package event
