package logging

import (
	"sync"

	"go.uber.org/zap"
)

var (
	once         sync.Once
	zapSingleton *zap.SugaredLogger
)

// Nop returns a logger that discards everything. Used by tests.
func Nop() Logger {
	return &zapLogger{
		cfg:    &LoggerConfig{},
		logger: zap.NewNop().Sugar(),
	}
}
