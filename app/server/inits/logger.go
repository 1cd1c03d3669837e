package inits

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger 构建全局日志，service 会作为固定字段附加到每一条日志上
func Logger(debugMode bool, service string) (*zap.Logger, error) {
	var zc zap.Config
	if debugMode {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	if service != "" {
		l = l.With(zap.String("service", service))
	}

	return l, nil
}
