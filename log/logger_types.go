package log

import (
	"sync"

	"go.uber.org/zap"
)

const (
	defaultLevels = "INFO|WARN|ERROR"
	allLevels     = "INFO|DEBUG|WARN|ERROR"
	redactedValue = "[REDACTED]"
)

var (
	base = zap.NewNop()
	// read/write mutex for logger
	mu = &sync.RWMutex{}
)

// Config holds configuration settings for the logger
type Config struct {
	Enabled *bool `json:"enabled" mapstructure:"enabled"`
	SubLoggerConfig `mapstructure:",squash"`
	// Structured switches the zap encoder from console to JSON output
	Structured bool              `json:"structured" mapstructure:"structured"`
	SubLoggers []SubLoggerConfig `json:"subloggers,omitempty" mapstructure:"subloggers"`
}

// SubLoggerConfig holds sub logger configuration settings
type SubLoggerConfig struct {
	Name   string `json:"name,omitempty" mapstructure:"name"`
	Level  string `json:"level" mapstructure:"level"`
	Output string `json:"output" mapstructure:"output"`
}

// Levels flags for each sub logger type
type Levels struct {
	Info, Debug, Warn, Error bool
}

// SubLogger defines a sub logger which can be enabled or disabled per
// subsystem
type SubLogger struct {
	name   string
	levels Levels
	zl     *zap.Logger
}

// logFields is used to store data in a non-global and thread-safe manner
// so logs cannot be modified mid-log
type logFields struct {
	sl     *SubLogger
	fields []zap.Field
}
