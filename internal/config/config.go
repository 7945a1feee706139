// Package config loads squtil defaults from the environment.
package config

import (
	"os"
	"strings"
)

// LogLevel is the minimum severity the logger writes.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "debug"
	case LogLevelInfo:
		return "info"
	case LogLevelWarn:
		return "warn"
	case LogLevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Endian selects the byte order used to interpret superblock fields.
type Endian int

const (
	EndianNative Endian = iota
	EndianLittle
	EndianBig
)

func (e Endian) String() string {
	switch e {
	case EndianLittle:
		return "le"
	case EndianBig:
		return "be"
	default:
		return "native"
	}
}

// Config holds the defaults taken from the environment.
type Config struct {
	LogLevel LogLevel
	Endian   Endian
}

// Load reads SQUTIL_LOG_LEVEL and SQUTIL_ENDIAN, falling back to warn and
// native.
func Load() *Config {
	return &Config{
		LogLevel: parseLogLevel(getEnv("SQUTIL_LOG_LEVEL", "warn")),
		Endian:   ParseEndian(getEnv("SQUTIL_ENDIAN", "native")),
	}
}

// ParseEndian accepts le, be and native, with or without a leading dash.
// Anything else means native.
func ParseEndian(s string) Endian {
	switch strings.ToLower(strings.TrimPrefix(s, "-")) {
	case "le", "little":
		return EndianLittle
	case "be", "big":
		return EndianBig
	default:
		return EndianNative
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseLogLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return LogLevelDebug
	case "info":
		return LogLevelInfo
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelWarn
	}
}
