package storage

import (
	"fmt"

	"github.com/aws/smithy-go/logging"
	"go.uber.org/zap"
)

// Ensure ZapLogger implements logging.Logger
var _ logging.Logger = (*ZapLogger)(nil)

// ZapLogger adapts zap.Logger to the AWS SDK logging.Logger interface
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger creates a new ZapLogger adapter
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{logger: logger.With(zap.String("component", "aws-sdk"))}
}

// Logf logs an SDK message at the level matching its classification
func (z *ZapLogger) Logf(classification logging.Classification, format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	switch classification {
	case logging.Warn:
		z.logger.Warn(msg)
	default:
		z.logger.Debug(msg)
	}
}
