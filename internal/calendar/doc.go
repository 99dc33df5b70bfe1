// Package calendar exports available events as an iCalendar (.ics) file.
package calendar
