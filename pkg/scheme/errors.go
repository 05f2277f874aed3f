package scheme

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedToken marks label text holding characters outside the
	// enumeration alphabet, such as a footnote marker left in a label.
	ErrUnrecognizedToken = errors.New("unrecognized enumeration token")

	// ErrUnrecognizedScheme marks a token no scheme can classify.
	ErrUnrecognizedScheme = errors.New("unrecognized enumeration scheme")
)

// ClassificationError reports label text that could not be classified.
type ClassificationError struct {
	Text  string
	Chars string
	Err   error
}

func (e *ClassificationError) Error() string {
	if e.Chars != "" {
		return fmt.Sprintf("%v: %q contains %q", e.Err, e.Text, e.Chars)
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Text)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}
