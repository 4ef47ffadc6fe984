package utils

import "go.uber.org/zap"

// Logger is the key/value logging facade shared by all packages, backed by zap.
type Logger struct {
	s *zap.SugaredLogger
}

func NewLogger() *Logger {
	l, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return &Logger{s: l.Sugar()}
}

// NewNopLogger discards everything; handy in tests.
func NewNopLogger() *Logger { return &Logger{s: zap.NewNop().Sugar()} }

func (lg *Logger) Info(msg string, kv ...any)  { lg.s.Infow(msg, kv...) }
func (lg *Logger) Warn(msg string, kv ...any)  { lg.s.Warnw(msg, kv...) }
func (lg *Logger) Error(msg string, kv ...any) { lg.s.Errorw(msg, kv...) }

func (lg *Logger) Sync() { _ = lg.s.Sync() }
