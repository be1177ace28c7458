// Package logging is the process-wide leveled logger used by the report
// pipeline and the CLI.
//
// All loggers share one level and one sink. A Logger created with New tags its
// lines with a component name:
//
//	2026/10/19 12:00:00.000000 [INFO] report: wrote chart.png (3 series)
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// Level represents severity.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseLevel maps a name (debug, info, warn/warning, error) to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

var (
	level atomic.Int32
	sink  = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)
	std   = &Logger{}
)

func init() { level.Store(int32(LevelInfo)) }

// SetLevel parses and sets the global level. Unknown names leave it unchanged
// and report false.
func SetLevel(s string) bool {
	l, err := ParseLevel(s)
	if err != nil {
		return false
	}
	level.Store(int32(l))
	return true
}

// GetLevel returns the current global level.
func GetLevel() Level { return Level(level.Load()) }

// Enabled reports whether messages at l are currently written.
func Enabled(l Level) bool { return GetLevel() <= l }

// SetOutput redirects every logger (stderr by default).
func SetOutput(w io.Writer) { sink.SetOutput(w) }

// Logger writes through the shared sink, prefixing lines with its component.
type Logger struct {
	component string
}

// New returns a logger tagging its lines with component.
func New(component string) *Logger { return &Logger{component: component} }

func (lg *Logger) emit(l Level, format string, args []interface{}) {
	if !Enabled(l) {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	if lg.component != "" {
		msg = lg.component + ": " + msg
	}
	sink.Printf("[%s] %s", l, msg)
}

func (lg *Logger) Debugf(format string, a ...interface{}) { lg.emit(LevelDebug, format, a) }
func (lg *Logger) Infof(format string, a ...interface{})  { lg.emit(LevelInfo, format, a) }
func (lg *Logger) Warnf(format string, a ...interface{})  { lg.emit(LevelWarn, format, a) }
func (lg *Logger) Errorf(format string, a ...interface{}) { lg.emit(LevelError, format, a) }

// TimeTrack logs the duration of a phase at debug level.
//
//	defer logger.TimeTrack(time.Now(), "render")
func (lg *Logger) TimeTrack(start time.Time, label string) {
	lg.Debugf("%s took %s", label, time.Since(start))
}

func Debugf(format string, a ...interface{}) { std.emit(LevelDebug, format, a) }
func Infof(format string, a ...interface{})  { std.emit(LevelInfo, format, a) }
func Warnf(format string, a ...interface{})  { std.emit(LevelWarn, format, a) }
func Errorf(format string, a ...interface{}) { std.emit(LevelError, format, a) }
