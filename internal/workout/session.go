package workout

import (
	"time"

	"github.com/google/uuid"
)

// Deletion is set once a session is soft deleted. A nil Deletion means the session is active.
type Deletion struct {
	At time.Time
	By uuid.UUID
}

// Session is the aggregate root: it owns its exercises, which own their sets.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Date      time.Time
	Name      *string
	Notes     *string
	Deletion  *Deletion
	CreatedAt time.Time
	UpdatedAt time.Time
	Exercises []*WorkoutExercise
}

func NewSession(id, owner uuid.UUID, date time.Time, name, notes *string, now time.Time) *Session {
	return &Session{
		ID:        id,
		UserID:    owner,
		Date:      TruncateDate(date),
		Name:      name,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TruncateDate drops the time of day, keeping the calendar day of t.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *Session) IsDeleted() bool {
	return s.Deletion != nil
}

// AddExercise appends a new workout exercise at position len(exercises) + 1.
func (s *Session) AddExercise(id, exerciseID uuid.UUID, sets []SetInput, newID func() uuid.UUID, now time.Time) (*WorkoutExercise, error) {
	if s.IsDeleted() {
		return nil, ErrSessionDeleted
	}
	if len(sets) > MaxSetsPerExercise {
		return nil, ErrInvalidSets
	}

	we := &WorkoutExercise{
		ID:             id,
		SessionID:      s.ID,
		ExerciseID:     exerciseID,
		OrderInWorkout: len(s.Exercises) + 1,
		CreatedAt:      now,
		Sets:           newSets(id, sets, newID, now),
	}
	s.Exercises = append(s.Exercises, we)
	return we, nil
}

func (s *Session) FindExercise(workoutExerciseID uuid.UUID) (*WorkoutExercise, error) {
	if s.IsDeleted() {
		return nil, ErrWorkoutExerciseNotFound
	}
	for _, we := range s.Exercises {
		if we.ID == workoutExerciseID {
			return we, nil
		}
	}
	return nil, ErrWorkoutExerciseNotFound
}

// ReplaceSets drops all sets of the workout exercise and stores the given ones, in order.
func (s *Session) ReplaceSets(workoutExerciseID uuid.UUID, sets []SetInput, newID func() uuid.UUID, now time.Time) (*WorkoutExercise, error) {
	we, err := s.FindExercise(workoutExerciseID)
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 || len(sets) > MaxSetsPerExercise {
		return nil, ErrInvalidSets
	}

	we.Sets = newSets(we.ID, sets, newID, now)
	return we, nil
}

// RemoveExercise removes the workout exercise with its sets. Remaining exercises keep their order.
func (s *Session) RemoveExercise(workoutExerciseID uuid.UUID) error {
	if s.IsDeleted() {
		return ErrWorkoutExerciseNotFound
	}
	for i, we := range s.Exercises {
		if we.ID == workoutExerciseID {
			s.Exercises = append(s.Exercises[:i], s.Exercises[i+1:]...)
			return nil
		}
	}
	return ErrWorkoutExerciseNotFound
}

func (s *Session) Update(date time.Time, name, notes *string, now time.Time) error {
	if s.IsDeleted() {
		return ErrSessionDeleted
	}
	s.Date = TruncateDate(date)
	s.Name = name
	s.Notes = notes
	s.UpdatedAt = now
	return nil
}

func (s *Session) Delete(by uuid.UUID, now time.Time) error {
	if s.IsDeleted() {
		return ErrSessionAlreadyDeleted
	}
	s.Deletion = &Deletion{
		At: now,
		By: by,
	}
	s.UpdatedAt = now
	return nil
}
