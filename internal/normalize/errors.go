package normalize

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedFormat indicates the text contains nothing that looks like a date.
	ErrUnrecognizedFormat = errors.New("unrecognized date format")

	// ErrUnknownMonth indicates a month name that is neither German nor English.
	ErrUnknownMonth = errors.New("unknown month name")

	// ErrEmptyTitle indicates an entry that has neither a title nor a series name.
	ErrEmptyTitle = errors.New("event has no title")
)

// DateParseError reports date text that could not be turned into a calendar date.
// It only ever drops the single event it belongs to.
type DateParseError struct {
	Raw string
	Err error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("parsing date %q: %v", e.Raw, e.Err)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}
