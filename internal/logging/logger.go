// Package logging configures the logrus logger shared by the harness.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Options configures the logger behavior.
type Options struct {
	// Level is a logrus level name such as "debug" or "warning".
	Level string
	// Output defaults to os.Stderr.
	Output io.Writer
	// JSON switches to the JSON formatter.
	JSON bool
}

// New creates a logger for the given options.
func New(opts Options) (*logrus.Logger, error) {
	logger := logrus.New()
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	logger.SetOutput(opts.Output)

	if opts.Level != "" {
		level, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		logger.SetLevel(level)
	}

	if opts.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return logger, nil
}

// Discard returns a logger that drops everything. Used where no logger was wired.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
