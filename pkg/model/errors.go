package model

import (
	"errors"
	"fmt"
)

// ErrFormat marks a structural line whose shape the models do not expect.
var ErrFormat = errors.New("unexpected format")

// FormatError reports the offending line text and the document kind.
type FormatError struct {
	Kind Kind
	Text string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %v: %q", e.Kind, ErrFormat, e.Text)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}
