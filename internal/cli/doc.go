// Package cli implements the command-line interface for seminar-events.
//
// The root command runs one scrape: it loads the configuration, fetches every
// enabled source, writes the JSON feed and optionally an iCalendar export and a
// Prometheus textfile. The sources subcommand lists the configured pages and
// version prints the build version.
package cli
