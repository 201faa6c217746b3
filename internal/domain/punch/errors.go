package punch

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownEventType = errors.New("unknown punch event type")
	ErrMissingEmployee  = errors.New("punch has no employee id")
)

// NormalizationError reports a raw timestamp that could not be parsed.
// The offending punch is excluded from matching and hour computation;
// the error is recorded on the venue row without aborting the run.
type NormalizationError struct {
	Raw string
	Err error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("cannot normalize timestamp %q: %v", e.Raw, e.Err)
}

func (e *NormalizationError) Unwrap() error {
	return e.Err
}
