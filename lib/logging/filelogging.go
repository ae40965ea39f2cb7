package logging

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/ziflex/lecho/v3"
)

var levels = map[string]log.Lvl{
	"debug": log.DEBUG,
	"info":  log.INFO,
	"warn":  log.WARN,
	"error": log.ERROR,
	"off":   log.OFF,
}

// ParseLevel maps a level name to a gommon level, defaulting to debug.
func ParseLevel(level string) log.Lvl {
	if lvl, ok := levels[strings.ToLower(strings.TrimSpace(level))]; ok {
		return lvl
	}
	return log.DEBUG
}

func Logger(logFilePath string, level string) *lecho.Logger {
	logger := lecho.New(
		os.Stdout, // default to STDOUT
		lecho.WithLevel(ParseLevel(level)),
		lecho.WithTimestamp(),
	)
	// check if a log file config is set
	if logFilePath != "" {
		file, err := GetLoggingFile(logFilePath, time.Now())
		if err != nil {
			logger.Errorf("failed to create logging file: %v", err)
			return logger
		}
		logger.SetOutput(file)
	}

	return logger
}

// GetLoggingFile opens an append-only log file with the day stamped into its name,
// e.g. ledger.log becomes ledger-2024-01-05.log.
func GetLoggingFile(path string, now time.Time) (*os.File, error) {
	return os.OpenFile(datedLogPath(path, now), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
}

func datedLogPath(path string, now time.Time) string {
	stamp := now.Format("-2006-01-02")
	extension := filepath.Ext(path)
	if extension == "" {
		return path + stamp + ".log"
	}
	return strings.TrimSuffix(path, extension) + stamp + extension
}
