// Package calendar renders events as an iCalendar (RFC 5545) document.
package calendar
