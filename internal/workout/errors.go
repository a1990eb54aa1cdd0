package workout

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionDeleted matches ErrSessionNotFound with errors.Is.
	ErrSessionDeleted          = fmt.Errorf("%w: session deleted", ErrSessionNotFound)
	ErrSessionAlreadyDeleted   = errors.New("session already deleted")
	ErrWorkoutExerciseNotFound = errors.New("workout exercise not found")
	ErrInvalidSets             = errors.New("invalid number of sets")
)
