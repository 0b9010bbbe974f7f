package services

import (
	"context"
	"log/slog"

	"github.com/AhmedRagabRG/exabytex-sub001/internal/middleware"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/utils"
)

// systemDistinctID attributes analytics events raised outside a request.
const systemDistinctID = "storefront-backend"

// BaseService provides common functionality for all services
type BaseService struct {
	Tracker utils.EventTracker
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Track enqueues an analytics event attributed to the current request.
func (s *BaseService) Track(ctx context.Context, event string, properties map[string]any) {
	if s.Tracker == nil || !s.Tracker.IsInitialized() {
		return
	}
	distinctID, ok := middleware.GetUserIDFromCtx(ctx)
	if !ok {
		distinctID = middleware.GetRequestID(ctx)
	}
	if distinctID == "" {
		distinctID = systemDistinctID
	}
	s.Tracker.Enqueue(distinctID, event, properties)
}
