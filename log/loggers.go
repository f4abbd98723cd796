package log

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

type level uint8

const (
	infoLevel level = iota
	debugLevel
	warnLevel
	errorLevel
)

// Info takes a pointer subLogger struct and string sends to zap
func Info(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	sl.getFields().stage(infoLevel, data)
}

// Infoln takes a pointer subLogger struct and interface sends to zap
func Infoln(sl *SubLogger, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.getFields().stage(infoLevel, fmt.Sprint(v...))
}

// Infof takes a pointer subLogger struct, string and interface formats sends to zap
func Infof(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.getFields().stage(infoLevel, fmt.Sprintf(data, v...))
}

// Debug takes a pointer subLogger struct and string sends to zap
func Debug(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	sl.getFields().stage(debugLevel, data)
}

// Debugln takes a pointer subLogger struct, string and interface sends to zap
func Debugln(sl *SubLogger, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.getFields().stage(debugLevel, fmt.Sprint(v...))
}

// Debugf takes a pointer subLogger struct, string and interface formats sends to zap
func Debugf(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.getFields().stage(debugLevel, fmt.Sprintf(data, v...))
}

// Warn takes a pointer subLogger struct & string and sends to zap
func Warn(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	sl.getFields().stage(warnLevel, data)
}

// Warnln takes a pointer subLogger struct & interface formats and sends to zap
func Warnln(sl *SubLogger, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.getFields().stage(warnLevel, fmt.Sprint(v...))
}

// Warnf takes a pointer subLogger struct, string and interface formats sends to zap
func Warnf(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.getFields().stage(warnLevel, fmt.Sprintf(data, v...))
}

// Error takes a pointer subLogger struct & interface formats and sends to zap
func Error(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	sl.getFields().stage(errorLevel, data)
}

// Errorln takes a pointer subLogger struct, string & interface formats and sends to zap
func Errorln(sl *SubLogger, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.getFields().stage(errorLevel, fmt.Sprint(v...))
}

// Errorf takes a pointer subLogger struct, string and interface formats sends to zap
func Errorf(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.getFields().stage(errorLevel, fmt.Sprintf(data, v...))
}

// enabled checks if the log level is enabled
func (l *logFields) enabled(lvl level) bool {
	switch lvl {
	case infoLevel:
		return l.sl.levels.Info
	case debugLevel:
		return l.sl.levels.Debug
	case warnLevel:
		return l.sl.levels.Warn
	case errorLevel:
		return l.sl.levels.Error
	}
	return false
}

// stage writes a log event through the sub logger's zap logger. Callers must
// hold mu.
func (l *logFields) stage(lvl level, data string) {
	if l == nil || !l.enabled(lvl) {
		return
	}
	switch lvl {
	case infoLevel:
		l.sl.zl.Info(data, l.fields...)
	case debugLevel:
		l.sl.zl.Debug(data, l.fields...)
	case warnLevel:
		l.sl.zl.Warn(data, l.fields...)
	case errorLevel:
		l.sl.zl.Error(data, l.fields...)
	}
}

// WithFields allows the user to add fields to a structured log output.
// Values stored under credential-bearing keys are redacted.
func WithFields(sl *SubLogger, structuredFields map[string]interface{}) *logFields {
	fields := sl.getFields()
	if fields == nil {
		return nil
	}
	keys := make([]string, 0, len(structuredFields))
	for k := range structuredFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	zf := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		if IsSensitiveKey(k) {
			zf = append(zf, zap.String(k, redactedValue))
			continue
		}
		zf = append(zf, zap.Any(k, structuredFields[k]))
	}
	return fields.with(zf)
}

func (l *logFields) Error(data string) {
	mu.RLock()
	defer mu.RUnlock()
	l.stage(errorLevel, data)
}

func (l *logFields) Errorf(data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	l.stage(errorLevel, fmt.Sprintf(data, v...))
}

func (l *logFields) Warn(data string) {
	mu.RLock()
	defer mu.RUnlock()
	l.stage(warnLevel, data)
}

func (l *logFields) Warnf(data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	l.stage(warnLevel, fmt.Sprintf(data, v...))
}

func (l *logFields) Info(data string) {
	mu.RLock()
	defer mu.RUnlock()
	l.stage(infoLevel, data)
}

func (l *logFields) Infof(data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	l.stage(infoLevel, fmt.Sprintf(data, v...))
}

func (l *logFields) Debug(data string) {
	mu.RLock()
	defer mu.RUnlock()
	l.stage(debugLevel, data)
}

func (l *logFields) Debugf(data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	l.stage(debugLevel, fmt.Sprintf(data, v...))
}
