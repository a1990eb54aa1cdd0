// Package catalog holds the exercise library: muscle categories and the exercises
// that workouts reference. Names come in pairs, a primary and a secondary language name.
package catalog

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrExerciseNotFound       = errors.New("exercise not found")
	ErrMuscleCategoryNotFound = errors.New("muscle category not found")
	ErrExerciseInUse          = errors.New("exercise is used by workouts")
	ErrMuscleCategoryInUse    = errors.New("muscle category still has exercises")
	ErrNameTaken              = errors.New("name already taken")
)

type MuscleCategory struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	NameSecondary string    `json:"nameSecondary"`
}

type Exercise struct {
	ID            uuid.UUID `json:"id"`
	CategoryID    uuid.UUID `json:"categoryId"`
	Name          string    `json:"name"`
	NameSecondary *string   `json:"nameSecondary,omitempty"`
}
