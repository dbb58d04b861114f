package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var NOOPLogger = zap.NewNop().Sugar()

// New builds a sugared zap logger. Local and test environments get the
// human readable development encoder, everything else JSON.
func New(appEnv string) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	if appEnv == "" || appEnv == "local" || appEnv == "test" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar().With("app", "movieparadise"), nil
}
