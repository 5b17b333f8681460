// Package config reads the server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variable names.
const (
	EnvLogLevel     = "STRIP_MCP_LOG_LEVEL"
	EnvLogFormat    = "STRIP_MCP_LOG_FORMAT"
	EnvCalibration  = "STRIP_MCP_CALIBRATION"
	EnvHistoryLimit = "STRIP_MCP_HISTORY_LIMIT"
	EnvCacheSize    = "STRIP_MCP_CACHE_SIZE"
	EnvLocator      = "STRIP_MCP_LOCATOR"
)

// Strip locator names accepted in EnvLocator.
const (
	LocatorOtsu   = "otsu"
	LocatorOpenCV = "opencv"
)

// Config holds the server settings. Zero limits mean unlimited.
type Config struct {
	LogLevel  string
	LogFormat string
	// CalibrationPath names a JSON calibration profile. Empty selects the
	// built-in glucose reference.
	CalibrationPath string
	HistoryLimit    int
	CacheSize       int
	// Locator is LocatorOtsu or LocatorOpenCV. The OpenCV locator is only
	// available in binaries built with -tags gocv.
	Locator string
}

// Load reads the configuration, falling back to defaults for unset variables.
// A set but malformed or negative number is an error, as is an unknown
// locator name.
func Load() (*Config, error) {
	historyLimit, err := getEnvInt(EnvHistoryLimit, 50)
	if err != nil {
		return nil, err
	}
	cacheSize, err := getEnvInt(EnvCacheSize, 32)
	if err != nil {
		return nil, err
	}

	locator := getEnv(EnvLocator, LocatorOtsu)
	if locator != LocatorOtsu && locator != LocatorOpenCV {
		return nil, fmt.Errorf("%s: unknown locator %q (want %s or %s)",
			EnvLocator, locator, LocatorOtsu, LocatorOpenCV)
	}

	return &Config{
		LogLevel:        getEnv(EnvLogLevel, "info"),
		LogFormat:       getEnv(EnvLogFormat, "json"),
		CalibrationPath: getEnv(EnvCalibration, ""),
		HistoryLimit:    historyLimit,
		CacheSize:       cacheSize,
		Locator:         locator,
	}, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s: must not be negative, got %d", key, n)
	}
	return n, nil
}
