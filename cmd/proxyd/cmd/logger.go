package cmd

import (
	"github.com/tendermint/tendermint/libs/log"
	"go.uber.org/zap"
)

var _ log.Logger = (*zapLogger)(nil)

// zapLogger hands the logs of the proxy module to the zap root logger.
type zapLogger struct {
	log *zap.SugaredLogger
}

func newZapLogger(logger *zap.Logger) log.Logger {
	return &zapLogger{log: logger.Sugar()}
}

func (l *zapLogger) Debug(msg string, keyvals ...interface{}) {
	l.log.Debugw(msg, keyvals...)
}

func (l *zapLogger) Info(msg string, keyvals ...interface{}) {
	l.log.Infow(msg, keyvals...)
}

func (l *zapLogger) Error(msg string, keyvals ...interface{}) {
	l.log.Errorw(msg, keyvals...)
}

func (l *zapLogger) With(keyvals ...interface{}) log.Logger {
	return &zapLogger{log: l.log.With(keyvals...)}
}
