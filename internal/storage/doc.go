// Package storage writes the event feed to disk.
//
// The feed is a JSON array of events, two-space indented, without HTML escaping
// and with a trailing newline. Files are replaced atomically: the content is
// written to a temporary file in the target directory and renamed over the old
// file, so readers never see a partially written feed. A leading "~/" in a path
// is expanded to the home directory.
package storage
