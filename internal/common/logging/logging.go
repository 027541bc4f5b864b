package logging

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ConfigureCliLogging sets up logging for command line tools: bare messages on stderr, so that stdout carries
// only the results.
func ConfigureCliLogging() {
	configure(os.Stderr, &CommandLineFormatter{}, log.InfoLevel)
}

// ConfigureLogging sets up timestamped text logging on stderr at the given level.
func ConfigureLogging(level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	configure(os.Stderr, &log.TextFormatter{FullTimestamp: true}, lvl)
	return nil
}

// ParseLevel converts a textual log level, e.g. "info" or "WARN", into a logrus level.
func ParseLevel(level string) (log.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel, nil
	case "info", "":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, errors.Errorf("unknown level: %s", level)
	}
}

func configure(out io.Writer, formatter log.Formatter, level log.Level) {
	log.SetFormatter(formatter)
	log.SetOutput(out)
	log.SetLevel(level)
}

// Discard returns an entry whose logger drops everything, for code under test that logs.
func Discard() *log.Entry {
	l := log.New()
	l.SetOutput(io.Discard)
	l.SetLevel(log.PanicLevel)
	return log.NewEntry(l)
}
