// Package logger provides the leveled console logger used for scan progress
// and verbose run diagnostics. Output goes to a writer with [HH:MM:SS]
// timestamps; color is enabled automatically when the writer is a terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger writes leveled, timestamped messages to a writer. It is safe
// for concurrent use. A nil writer discards everything.
type ConsoleLogger struct {
	writer      io.Writer
	level       int
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger writing to w, filtering out
// messages below level. Valid levels are trace, debug, info, warn and error
// (case-insensitive); anything else falls back to info.
func NewConsoleLogger(w io.Writer, level string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      w,
		level:       parseLevel(level),
		colorOutput: isTerminal(w),
	}
}

func parseLevel(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// isTerminal reports whether w is a TTY that should receive color codes.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Tracef logs at trace level with Printf formatting.
func (cl *ConsoleLogger) Tracef(format string, args ...interface{}) {
	cl.log(levelTrace, "TRACE", format, args...)
}

// Debugf logs at debug level with Printf formatting.
func (cl *ConsoleLogger) Debugf(format string, args ...interface{}) {
	cl.log(levelDebug, "DEBUG", format, args...)
}

// Infof logs at info level with Printf formatting.
func (cl *ConsoleLogger) Infof(format string, args ...interface{}) {
	cl.log(levelInfo, "INFO", format, args...)
}

// Warnf logs at warn level with Printf formatting.
func (cl *ConsoleLogger) Warnf(format string, args ...interface{}) {
	cl.log(levelWarn, "WARN", format, args...)
}

// Errorf logs at error level with Printf formatting.
func (cl *ConsoleLogger) Errorf(format string, args ...interface{}) {
	cl.log(levelError, "ERROR", format, args...)
}

func (cl *ConsoleLogger) log(level int, tag, format string, args ...interface{}) {
	if cl.writer == nil || level < cl.level {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := time.Now().Format("15:04:05")
	if cl.colorOutput {
		tag = colorTag(tag)
	}
	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", ts, tag, fmt.Sprintf(format, args...))
}

func colorTag(tag string) string {
	switch tag {
	case "TRACE":
		return color.New(color.FgHiBlack).Sprint(tag)
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(tag)
	case "INFO":
		return color.New(color.FgBlue).Sprint(tag)
	case "WARN":
		return color.New(color.FgYellow).Sprint(tag)
	case "ERROR":
		return color.New(color.FgRed).Sprint(tag)
	}
	return tag
}
