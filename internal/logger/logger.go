// Package logger is a small leveled wrapper over the standard log package.
// Lines are prefixed with the upper-case level name, e.g. "[DEBUG]".
package logger

import (
	"log"
	"strings"
	"sync"

	"github.com/ecnx/squtil/internal/config"
)

var (
	level = config.LogLevelWarn
	mu    sync.RWMutex
)

// SetLevel sets the minimum level that is written.
func SetLevel(l config.LogLevel) {
	mu.Lock()
	level = l
	mu.Unlock()
}

// GetLevel returns the current minimum level.
func GetLevel() config.LogLevel {
	mu.RLock()
	defer mu.RUnlock()
	return level
}

// Debug logs mapping life-cycle detail.
func Debug(format string, args ...interface{}) {
	logf(config.LogLevelDebug, format, args...)
}

// Info logs completed operations.
func Info(format string, args ...interface{}) {
	logf(config.LogLevelInfo, format, args...)
}

// Warn logs suspicious but recoverable conditions.
func Warn(format string, args ...interface{}) {
	logf(config.LogLevelWarn, format, args...)
}

// Error logs failed system calls.
func Error(format string, args ...interface{}) {
	logf(config.LogLevelError, format, args...)
}

func logf(l config.LogLevel, format string, args ...interface{}) {
	if GetLevel() > l {
		return
	}
	log.Printf("["+strings.ToUpper(l.String())+"] "+format, args...)
}
