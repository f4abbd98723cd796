package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	errSubloggerConfigIsNil  = errors.New("sublogger config is nil")
	errUnhandledOutputWriter = errors.New("unhandled output writer")
	errSubLoggerNotFound     = errors.New("sub logger not found")
)

func getWriter(s *SubLoggerConfig) (io.Writer, error) {
	if s == nil {
		return nil, errSubloggerConfigIsNil
	}
	var writers []io.Writer
	for _, o := range strings.Split(s.Output, "|") {
		switch strings.ToLower(strings.TrimSpace(o)) {
		case "stdout", "console", "":
			writers = append(writers, os.Stdout)
		case "stderr":
			writers = append(writers, os.Stderr)
		default:
			return nil, fmt.Errorf("%w: %s", errUnhandledOutputWriter, o)
		}
	}
	if len(writers) == 1 {
		return writers[0], nil
	}
	return io.MultiWriter(writers...), nil
}

// GenDefaultSettings return struct with known sane/working logger settings
func GenDefaultSettings() Config {
	enabled := true
	return Config{
		Enabled: &enabled,
		SubLoggerConfig: SubLoggerConfig{
			Level:  defaultLevels,
			Output: "console",
		},
	}
}

func newZapLogger(structured bool, w io.Writer) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if structured {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	// Level filtering is done per sub logger so the core accepts everything
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), zapcore.DebugLevel))
}

// SetupGlobalLogger sets up the global zap logger and all registered sub
// loggers with the supplied configuration
func SetupGlobalLogger(cfg *Config) error {
	if cfg == nil {
		return errSubloggerConfigIsNil
	}
	if cfg.Enabled != nil && !*cfg.Enabled {
		setBase(zap.NewNop(), "")
		return nil
	}
	w, err := getWriter(&cfg.SubLoggerConfig)
	if err != nil {
		return err
	}
	setBase(newZapLogger(cfg.Structured, w), cfg.Level)
	for x := range cfg.SubLoggers {
		if err := configureSubLogger(&cfg.SubLoggers[x], cfg.Structured); err != nil {
			return err
		}
	}
	return nil
}

// SetOutput redirects every sub logger to the writer with all levels
// enabled, used by tests to capture output
func SetOutput(w io.Writer, structured bool) {
	setBase(newZapLogger(structured, w), allLevels)
}

func setBase(z *zap.Logger, levels string) {
	mu.Lock()
	defer mu.Unlock()
	base = z
	if levels == "" {
		levels = defaultLevels
	}
	for _, sl := range subLoggers {
		sl.zl = base.Named(sl.name)
		sl.levels = splitLevel(levels)
	}
}

func configureSubLogger(s *SubLoggerConfig, structured bool) error {
	mu.Lock()
	defer mu.Unlock()
	sl, ok := subLoggers[strings.ToUpper(s.Name)]
	if !ok {
		return fmt.Errorf("%w: %s", errSubLoggerNotFound, s.Name)
	}
	if s.Output != "" {
		w, err := getWriter(s)
		if err != nil {
			return err
		}
		sl.zl = newZapLogger(structured, w).Named(sl.name)
	}
	if s.Level != "" {
		sl.levels = splitLevel(s.Level)
	}
	return nil
}

// Sync flushes any buffered log entries
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return base.Sync()
}

func splitLevel(level string) (l Levels) {
	for _, lvl := range strings.Split(level, "|") {
		switch strings.ToUpper(strings.TrimSpace(lvl)) {
		case "DEBUG":
			l.Debug = true
		case "INFO":
			l.Info = true
		case "WARN":
			l.Warn = true
		case "ERROR":
			l.Error = true
		}
	}
	return
}
