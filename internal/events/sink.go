// Package events delivers committed movement lifecycle events to the
// configured sinks.
package events

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/movement_tracker/internal/core/ports/services"
)

// MultiSink fans an event out to every sink. All sinks are tried; their
// errors are joined.
type MultiSink []portssvc.EventSink

var _ portssvc.EventSink = MultiSink(nil)

func (m MultiSink) Publish(ctx context.Context, event domain.MovementEvent) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogSink writes each event as a structured log line.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Publish(ctx context.Context, event domain.MovementEvent) error {
	s.logger.InfoContext(ctx, "movement event",
		slog.String("event", string(event.Type)),
		slog.String("movement_id", event.MovementID),
		slog.String("area_id", event.AreaID),
		slog.String("actor_id", event.ActorID),
		slog.String("status", string(event.Status)),
	)
	return nil
}
