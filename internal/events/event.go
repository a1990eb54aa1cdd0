package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeSessionCreated       Type = "session.created"
	TypeSessionUpdated       Type = "session.updated"
	TypeSessionDeleted       Type = "session.deleted"
	TypeExerciseAdded        Type = "exercise.added"
	TypeExerciseSetsReplaced Type = "exercise.sets_replaced"
	TypeExerciseRemoved      Type = "exercise.removed"
)

// Event describes a committed change of a workout session.
type Event struct {
	ID                uuid.UUID  `json:"id"`
	Type              Type       `json:"type"`
	SessionID         uuid.UUID  `json:"sessionId"`
	UserID            uuid.UUID  `json:"userId"`
	WorkoutExerciseID *uuid.UUID `json:"workoutExerciseId,omitempty"`
	SetsCount         int        `json:"setsCount,omitempty"`
	OccurredAt        time.Time  `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. Used when kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
