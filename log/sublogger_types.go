package log

import (
	"strings"

	"go.uber.org/zap"
)

// Global vars related to the logger package
var (
	subLoggers = map[string]*SubLogger{}

	Global      *SubLogger
	ConfigMgr   *SubLogger
	RequestSys  *SubLogger
	ExchangeSys *SubLogger
	WithdrawMgr *SubLogger
	RESTSys     *SubLogger
)

func registerNewSubLogger(name string) *SubLogger {
	sl := &SubLogger{
		name:   strings.ToUpper(name),
		levels: splitLevel(defaultLevels),
		zl:     base.Named(strings.ToUpper(name)),
	}
	subLoggers[sl.name] = sl
	return sl
}

// register all loggers at package init()
func init() {
	Global = registerNewSubLogger("LOG")
	ConfigMgr = registerNewSubLogger("CONFIG")
	RequestSys = registerNewSubLogger("REQUESTER")
	ExchangeSys = registerNewSubLogger("EXCHANGE")
	WithdrawMgr = registerNewSubLogger("WITHDRAW")
	RESTSys = registerNewSubLogger("REST")
}

// getFields returns a snapshot of the sub logger state, nil when the sub
// logger is unset
func (sl *SubLogger) getFields() *logFields {
	if sl == nil {
		return nil
	}
	return &logFields{sl: sl}
}

// Name returns the sub logger name
func (sl *SubLogger) Name() string {
	return sl.name
}

// Levels returns the enabled levels for the sub logger
func (sl *SubLogger) Levels() Levels {
	mu.RLock()
	defer mu.RUnlock()
	return sl.levels
}

func (l *logFields) with(fields []zap.Field) *logFields {
	l.fields = append(l.fields, fields...)
	return l
}
