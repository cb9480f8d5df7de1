package estimate

import (
	"errors"
	"fmt"

	"github.com/iwvelando/breach-estimator/pkg/constants"
)

// ErrInvalidRecordCount matches any InvalidRecordCountError via errors.Is.
var ErrInvalidRecordCount = errors.New("invalid record count")

// InvalidRecordCountError reports a record count that is not a non-negative
// whole number. It is recoverable: callers show Message to the user.
type InvalidRecordCountError struct {
	Input string
	Err   error
}

func (e *InvalidRecordCountError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid record count %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("invalid record count %q", e.Input)
}

func (e *InvalidRecordCountError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrInvalidRecordCount) hold.
func (e *InvalidRecordCountError) Is(target error) bool {
	return target == ErrInvalidRecordCount
}

// Message is the user-facing text for the error.
func (e *InvalidRecordCountError) Message() string {
	return constants.InvalidRecordCountMessage
}
