package implementations

import (
	"context"

	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/observability"
)

// LogEventPublisher publishes photo events as structured log entries
type LogEventPublisher struct {
	logger *observability.Logger
}

var _ photo.EventPublisher = (*LogEventPublisher)(nil)

// NewLogEventPublisher creates an event publisher writing to logger
func NewLogEventPublisher(logger *observability.Logger) *LogEventPublisher {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &LogEventPublisher{logger: logger.WithComponent("photo-events")}
}

// Publish implements photo.EventPublisher
func (p *LogEventPublisher) Publish(ctx context.Context, event *photo.Event) error {
	if event == nil {
		return nil
	}

	entry := p.logger.Info(ctx).
		Str("event_id", event.ID).
		Str("event_type", string(event.Type)).
		Int64("photo_id", event.PhotoID).
		Time("event_time", event.Timestamp)
	if len(event.Data) > 0 {
		entry = entry.Fields(event.Data)
	}
	entry.Msg("photo event")

	return nil
}
