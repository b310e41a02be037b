package logger

import (
	"os"
	"sync"
)

var (
	globalLogger *Logger
	mu           sync.Mutex
)

// GetLogger returns the process-wide logger, creating a default one on first
// use. The default level comes from YTDIFF_LOG_LEVEL, or DEBUG=true.
func GetLogger() *Logger {
	mu.Lock()
	defer mu.Unlock()

	if globalLogger == nil {
		level := "info"
		if os.Getenv("DEBUG") == "true" {
			level = "debug"
		} else if v := os.Getenv("YTDIFF_LOG_LEVEL"); v != "" {
			level = v
		}
		globalLogger = New(Config{Level: level, Format: "console"})
	}
	return globalLogger
}

// Configure replaces the process-wide logger with one built from config.
func Configure(config Config) *Logger {
	mu.Lock()
	defer mu.Unlock()

	globalLogger = New(config)
	return globalLogger
}
