package log

import "go.uber.org/zap"

// zapLogger adapts a zap.SugaredLogger to the Logger interface, so the
// Debug/Info/Stats loggers can be backed by structured logging instead of
// the standard library's log.Logger.
type zapLogger struct {
	s     *zap.SugaredLogger
	level string
}

// NewZapLogger wraps s as a Logger. A level of "info" logs through s's Info
// methods; any other level (e.g. "debug" or "stats") logs at debug level.
func NewZapLogger(s *zap.SugaredLogger, level string) Logger {
	return &zapLogger{s: s, level: level}
}

func (z *zapLogger) Printf(format string, args ...interface{}) {
	if z.level == "info" {
		z.s.Infof(format, args...)
		return
	}
	z.s.Debugf(format, args...)
}

func (z *zapLogger) Println(args ...interface{}) {
	if z.level == "info" {
		z.s.Info(args...)
		return
	}
	z.s.Debug(args...)
}

// SetDefaultZapLoggers configures Debug, Info, and Stats to all write
// through a single production zap.Logger, at debug level for Debug/Stats
// and info level for Info. Stats output is tagged so it can be filtered
// from general debug noise downstream.
func SetDefaultZapLoggers() error {
	zl, err := zap.NewProduction()
	if err != nil {
		return err
	}
	sugar := zl.Sugar()
	SetDebugLogger(NewZapLogger(sugar, "debug"))
	SetInfoLogger(NewZapLogger(sugar, "info"))
	SetStatsLogger(NewZapLogger(sugar.With("component", "stats"), "stats"))
	return nil
}
