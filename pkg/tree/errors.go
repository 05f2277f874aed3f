package tree

import (
	"errors"
	"fmt"

	"github.com/unitedstates/uscode/pkg/locator"
)

// ErrPlacement marks a label no ancestor of the cursor would accept.
var ErrPlacement = errors.New("no ancestor accepts label")

// PlacementError reports the label that could not be placed.
type PlacementError struct {
	Label string
	Line  *locator.Line
}

func (e *PlacementError) Error() string {
	if e.Line != nil {
		return fmt.Sprintf("%v: %q on %s line", ErrPlacement, e.Label, e.Line.CodeArg())
	}
	return fmt.Sprintf("%v: %q", ErrPlacement, e.Label)
}

func (e *PlacementError) Unwrap() error {
	return ErrPlacement
}
