package events

import (
	"context"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
	"github.com/SscSPs/movement_tracker/internal/utils"
)

type enqueuer interface {
	Enqueue(distinctID string, event string, properties map[string]any) error
}

var _ enqueuer = (*utils.PosthogClientWrapper)(nil)

// PosthogSink captures each event for the acting user.
type PosthogSink struct {
	client enqueuer
}

func NewPosthogSink(client enqueuer) *PosthogSink {
	return &PosthogSink{client: client}
}

func (s *PosthogSink) Publish(_ context.Context, event domain.MovementEvent) error {
	return s.client.Enqueue(event.ActorID, "movement_"+string(event.Type), map[string]any{
		"movement_id": event.MovementID,
		"area_id":     event.AreaID,
		"status":      string(event.Status),
	})
}
