// Package log configures the process-wide logrus logger.
package log

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Init sets the level and output format of the standard logrus logger.
// format is "json" or "text".  An unknown level is an error and leaves
// the logger unchanged.
func Init(level, format string) error {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	var formatter logrus.Formatter
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		formatter = &logrus.JSONFormatter{}
	case "", "text":
		formatter = &logrus.TextFormatter{FullTimestamp: true}
	default:
		return fmt.Errorf("unknown log format %q", format)
	}

	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(formatter)
	logrus.SetLevel(lvl)
	return nil
}
