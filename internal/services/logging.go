package services

import (
	"context"
	"time"

	"github.com/SAP-F-2025/learning-assistant/internal/utils"
)

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger utils.Logger
}

func NewServiceLogger(logger utils.Logger, component string) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("service", "learning-assistant-quiz", "component", component),
	}
}

// LogOperation logs the outcome of one operation. Expected user-facing
// failures are logged below error level.
func (l *ServiceLogger) LogOperation(ctx context.Context, operation, sessionID, resourceID string, duration time.Duration, err error) {
	args := []any{
		"operation", operation,
		"session_id", sessionID,
		"resource_id", resourceID,
		"duration", duration.String(),
	}

	if err == nil {
		l.logger.InfoContext(ctx, "Operation completed", append(args, "status", "success")...)
		return
	}

	args = append(args, "error", err.Error())
	switch {
	case IsValidation(err) || IsUnanswered(err):
		l.logger.WarnContext(ctx, "Operation rejected", append(args, "status", "validation_error")...)
	case IsConflict(err):
		l.logger.WarnContext(ctx, "Operation rejected", append(args, "status", "conflict")...)
	case IsNotFound(err):
		l.logger.InfoContext(ctx, "Operation rejected", append(args, "status", "not_found")...)
	case IsGenerationFailure(err):
		l.logger.ErrorContext(ctx, "Operation failed", append(args, "status", "generation_failed")...)
	default:
		l.logger.ErrorContext(ctx, "Operation failed", append(args, "status", "error")...)
	}
}

func (l *ServiceLogger) Logger() utils.Logger {
	return l.logger
}
