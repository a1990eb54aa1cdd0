package workout

import (
	"time"

	"github.com/2beens/liftlog/internal/units"

	"github.com/google/uuid"
)

const MaxSetsPerExercise = 20

type WorkoutExercise struct {
	ID             uuid.UUID
	SessionID      uuid.UUID
	ExerciseID     uuid.UUID
	OrderInWorkout int
	CreatedAt      time.Time
	Sets           []ExerciseSet
}

// ExerciseSet is immutable. A workout exercise changes its sets only by replacing all of them.
type ExerciseSet struct {
	ID                uuid.UUID
	WorkoutExerciseID uuid.UUID
	SetsCount         int
	Reps              int
	WeightGrams       int64
	CreatedAt         time.Time
}

func (s ExerciseSet) WeightKg() float64 {
	return units.GramsToKg(s.WeightGrams)
}

type SetInput struct {
	SetsCount int
	Reps      int
	WeightKg  float64
}

func newSets(workoutExerciseID uuid.UUID, inputs []SetInput, newID func() uuid.UUID, now time.Time) []ExerciseSet {
	sets := make([]ExerciseSet, 0, len(inputs))
	for _, in := range inputs {
		sets = append(sets, ExerciseSet{
			ID:                newID(),
			WorkoutExerciseID: workoutExerciseID,
			SetsCount:         in.SetsCount,
			Reps:              in.Reps,
			WeightGrams:       units.KgToGrams(in.WeightKg),
			CreatedAt:         now,
		})
	}
	return sets
}
