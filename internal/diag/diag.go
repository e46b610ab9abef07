// Package diag writes leveled diagnostics to stderr. Output stays out of
// the way of command results on stdout; warnings and errors show by
// default, TRAIL_DEBUG=1 lowers the threshold to debug.
package diag

import (
	"os"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "trail",
	Level:  levelFromEnv(),
})

func levelFromEnv() log.Level {
	if os.Getenv("TRAIL_DEBUG") == "1" {
		return log.DebugLevel
	}
	return log.WarnLevel
}

func Debug(msg any, keyvals ...any) { logger.Debug(msg, keyvals...) }

func Warn(msg any, keyvals ...any) { logger.Warn(msg, keyvals...) }

func Error(msg any, keyvals ...any) { logger.Error(msg, keyvals...) }
