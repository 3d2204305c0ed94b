package domain

import "time"

// EventType names a completed lifecycle transition.
type EventType string

const (
	EventCreated     EventType = "created"
	EventUpdated     EventType = "updated"
	EventDeleted     EventType = "deleted"
	EventApproved    EventType = "approved"
	EventRejected    EventType = "rejected"
	EventCommented   EventType = "commented"
	EventImported    EventType = "imported"
	EventCategorized EventType = "categorized"
	EventFinalized   EventType = "finalized"
)

// MovementEvent is emitted after a lifecycle transition has been committed.
type MovementEvent struct {
	Type       EventType      `json:"type"`
	MovementID string         `json:"movementID"`
	AreaID     string         `json:"areaID"`
	ActorID    string         `json:"actorID"`
	Status     MovementStatus `json:"status"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// NewMovementEvent describes m after the actor changed it.
func NewMovementEvent(t EventType, m *Movement, actorID string, at time.Time) MovementEvent {
	return MovementEvent{
		Type:       t,
		MovementID: m.MovementID,
		AreaID:     m.AreaID,
		ActorID:    actorID,
		Status:     m.Status,
		OccurredAt: at,
	}
}
