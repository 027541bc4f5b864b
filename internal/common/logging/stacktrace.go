package logging

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const Stacktrace = "stacktrace"

// Unexported but considered part of the stable interface of pkg/errors.
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// WithStacktrace adds err to the entry. The stack trace recorded by pkg/errors is added as well, but only when the
// entry's logger is at debug level; at other levels it is noise for a command line user.
func WithStacktrace(entry *logrus.Entry, err error) *logrus.Entry {
	entry = entry.WithError(err)
	if !entry.Logger.IsLevelEnabled(logrus.DebugLevel) {
		return entry
	}
	if stack := ExtractStack(err); stack != nil {
		entry = entry.WithField(Stacktrace, stack)
	}
	return entry
}

// ExtractStack returns the outermost stack trace found while unwrapping err, or nil if there is none.
func ExtractStack(err error) errors.StackTrace {
	for err != nil {
		if stackErr, ok := err.(stackTracer); ok {
			return stackErr.StackTrace()
		}
		err = errors.Unwrap(err)
	}
	return nil
}
