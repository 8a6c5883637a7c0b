// Package logging builds the application logger. The TUI owns the
// terminal, so interactive runs log to a file (or nowhere); one-shot
// commands pass stderr as the fallback writer.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New creates a logrus logger at the given level, writing to file when set,
// otherwise to fallback.
func New(level, file string, fallback io.Writer) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	log.SetLevel(lvl)

	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		log.SetOutput(f)
		return log, nil
	}

	if fallback == nil {
		fallback = io.Discard
	}
	log.SetOutput(fallback)
	return log, nil
}
