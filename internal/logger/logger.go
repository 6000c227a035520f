// Package logger provides the process-wide zap logger.
package logger

import (
	"fmt"
	"sync"
)

const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	globalLogger *Logger
	once         sync.Once
)

// Get returns the singleton logger. Only the first call's level counts;
// later changes go through SetLevel (config hot reload does that).
func Get(level string) *Logger {
	once.Do(func() {
		globalLogger = newZapLogger(level)
	})
	return globalLogger
}

// ParseLevel checks a configured level name.
func ParseLevel(s string) (string, error) {
	switch s {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel:
		return s, nil
	default:
		return "", fmt.Errorf("unknown log level %q (want debug, info, warn or error)", s)
	}
}
