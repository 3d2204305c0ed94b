package domain

import (
	"fmt"

	"github.com/SscSPs/movement_tracker/internal/apperrors"
)

// LifecycleAction is a trigger applied to a movement's status.
type LifecycleAction string

const (
	ActionFinalize   LifecycleAction = "finalize"
	ActionApprove    LifecycleAction = "approve"
	ActionReject     LifecycleAction = "reject"
	ActionEdit       LifecycleAction = "edit"
	ActionCategorize LifecycleAction = "categorize"
	ActionDelete     LifecycleAction = "delete"
	ActionComment    LifecycleAction = "comment"
)

// transitions is the single source of truth for movement status changes.
// Delete keeps the status and only sets the soft delete marker.
var transitions = map[MovementStatus]map[LifecycleAction]MovementStatus{
	StatusDraft: {
		ActionFinalize:   StatusPending,
		ActionEdit:       StatusDraft,
		ActionCategorize: StatusDraft,
		ActionDelete:     StatusDraft,
		ActionComment:    StatusDraft,
	},
	StatusPending: {
		ActionApprove: StatusApproved,
		ActionReject:  StatusRejected,
		ActionEdit:    StatusPending,
		ActionDelete:  StatusPending,
		ActionComment: StatusPending,
	},
	StatusApproved: {
		ActionEdit:    StatusPending,
		ActionDelete:  StatusApproved,
		ActionComment: StatusApproved,
	},
	StatusRejected: {
		ActionEdit:    StatusPending,
		ActionDelete:  StatusRejected,
		ActionComment: StatusRejected,
	},
	StatusCancelled: {},
}

// Transition returns the status reached by applying action to current, or a
// Conflict naming the current status when the action is not allowed.
func Transition(current MovementStatus, action LifecycleAction) (MovementStatus, error) {
	allowed, known := transitions[current]
	if !known {
		return "", apperrors.NewBadRequestError(fmt.Sprintf("unknown movement status %q", current))
	}
	next, ok := allowed[action]
	if !ok {
		if expected := expectedStatus(action); expected != "" {
			return current, apperrors.NewConflictError(fmt.Sprintf("movement is %s, expected %s", current, expected))
		}
		return current, apperrors.NewConflictError(fmt.Sprintf("cannot %s a movement that is %s", action, current))
	}
	return next, nil
}

// CanTransition is the boolean form of Transition.
func CanTransition(current MovementStatus, action LifecycleAction) bool {
	_, err := Transition(current, action)
	return err == nil
}

func expectedStatus(action LifecycleAction) MovementStatus {
	var found MovementStatus
	for from, actions := range transitions {
		if _, ok := actions[action]; ok {
			if found != "" {
				return ""
			}
			found = from
		}
	}
	return found
}

// InitialStatus is DRAFT for imported rows and PENDING for direct creation.
func InitialStatus(imported bool) MovementStatus {
	if imported {
		return StatusDraft
	}
	return StatusPending
}
