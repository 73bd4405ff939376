// Package log is a thin leveled logging layer over apex/log.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// EnvLevel names the environment variable holding the log level
const EnvLevel = "JSONCMP_LOG"

var traceEnabled bool

// InitLogger installs the compact handler on stderr. The level comes from
// JSONCMP_LOG (trace, debug, info, warn, error, fatal; default error) unless
// debug forces debug level.
func InitLogger(debug bool) {
	InitLoggerTo(os.Stderr, os.Getenv(EnvLevel), debug)
}

// InitLoggerTo is InitLogger with an explicit writer and level name
func InitLoggerTo(w io.Writer, level string, debug bool) {
	level = strings.ToLower(strings.TrimSpace(level))
	if debug && level != "trace" {
		level = "debug"
	}
	traceEnabled = level == "trace"

	var apexLevel log.Level
	switch level {
	case "trace", "debug":
		apexLevel = log.DebugLevel
	case "info":
		apexLevel = log.InfoLevel
	case "warn":
		apexLevel = log.WarnLevel
	case "fatal":
		apexLevel = log.FatalLevel
	default:
		apexLevel = log.ErrorLevel
	}
	log.SetHandler(&Handler{w: w})
	log.SetLevel(apexLevel)
}

// Handler writes one "timestamp level message key=value..." line per entry
type Handler struct {
	mu sync.Mutex
	w  io.Writer
}

// HandleLog implements the log.Handler interface
func (h *Handler) HandleLog(e *log.Entry) error {
	message := e.Message
	level := "?"
	if strings.HasPrefix(message, "TRACE: ") {
		level = "T"
		message = message[7:]
	} else {
		switch e.Level {
		case log.DebugLevel:
			level = "D"
		case log.InfoLevel:
			level = "I"
		case log.WarnLevel:
			level = "W"
		case log.ErrorLevel:
			level = "E"
		case log.FatalLevel:
			level = "F"
		}
	}

	var fields strings.Builder
	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&fields, " %s=%v", name, e.Fields.Get(name))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.w, "%s %s %s%s\n", e.Timestamp.Format(time.DateTime), level, message, fields.String())
	return err
}

// Tracef logs at Trace level (below Debug).
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug("TRACE: " + fmt.Sprintf(format, args...))
	}
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

// WithField returns an entry carrying a single field.
func WithField(key string, value interface{}) *log.Entry {
	return log.WithField(key, value)
}

// WithError returns an entry with error.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
