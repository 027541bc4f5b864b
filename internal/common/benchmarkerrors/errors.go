// Package benchmarkerrors contains generic errors returned while setting up a benchmark run, and the mapping from
// errors to process exit codes used by the command line entry point.
//
// Functions that find several problems at once should return a *multierror.Error from
// github.com/hashicorp/go-multierror wrapping the individual errors.
package benchmarkerrors

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

const (
	ExitCodeOK              = 0
	ExitCodeFailure         = 1
	ExitCodeInvalidArgument = 2
	ExitCodeInterrupted     = 130
)

// ErrInvalidConfiguration is returned once the individual configuration problems have been reported.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrNotFound is a generic error to be returned whenever some named thing, e.g. a hasher, isn't known.
// Type and Message are optional and are omitted from the error message if not provided.
type ErrNotFound struct {
	Type    string
	Value   string
	Message string
}

func (err *ErrNotFound) Error() (s string) {
	if err.Type != "" {
		s = fmt.Sprintf("%s %q does not exist", err.Type, err.Value)
	} else {
		s = fmt.Sprintf("%q does not exist", err.Value)
	}
	if err.Message != "" {
		return s + fmt.Sprintf("; %s", err.Message)
	}
	return s
}

// ErrInvalidArgument is a generic error to be returned on invalid argument.
// Message is optional and is omitted from the error message if not provided.
type ErrInvalidArgument struct {
	Name    string      // Name of the field referred to, e.g., "minLength"
	Value   interface{} // The invalid value that was provided
	Message string      // An optional message explaining why the value is invalid
}

func (err *ErrInvalidArgument) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("value %v is invalid for field %q", err.Value, err.Name)
	}
	return fmt.Sprintf("value %v is invalid for field %q; %s", err.Value, err.Name, err.Message)
}

// ExitCodeFromError maps error types to process exit codes.
// Uses errors.As to look through the chain of errors, and looks inside multierrors, where any invalid argument
// makes the whole error an invalid argument. Struct validation failures count as invalid arguments.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitCodeOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitCodeInterrupted
	}
	if errors.Is(err, ErrInvalidConfiguration) {
		return ExitCodeInvalidArgument
	}

	var multiErr *multierror.Error
	if errors.As(err, &multiErr) {
		for _, e := range multiErr.Errors {
			if ExitCodeFromError(e) == ExitCodeInvalidArgument {
				return ExitCodeInvalidArgument
			}
		}
		return ExitCodeFailure
	}

	var invalidArgument *ErrInvalidArgument
	var notFound *ErrNotFound
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &invalidArgument), errors.As(err, &notFound), errors.As(err, &validationErrors):
		return ExitCodeInvalidArgument
	default:
		return ExitCodeFailure
	}
}
