package workout

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// memoryRepo keeps sessions in a map. Update works on a copy, so a failing fn leaves nothing behind.
type memoryRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	updates  int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		sessions: make(map[uuid.UUID]*Session),
	}
}

func (r *memoryRepo) Create(_ context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = cloneSession(s)
	return nil
}

func (r *memoryRepo) GetWithExercises(_ context.Context, id, owner uuid.UUID) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.UserID != owner || s.IsDeleted() {
		return nil, ErrSessionNotFound
	}
	return cloneSession(s), nil
}

func (r *memoryRepo) List(_ context.Context, params ListParams) ([]*Session, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matching []*Session
	for _, s := range r.sessions {
		if s.UserID != params.UserID || s.IsDeleted() {
			continue
		}
		if params.From != nil && s.Date.Before(*params.From) {
			continue
		}
		if params.To != nil && s.Date.After(*params.To) {
			continue
		}
		matching = append(matching, cloneSession(s))
	}
	sort.Slice(matching, func(i, j int) bool {
		if !matching[i].Date.Equal(matching[j].Date) {
			return matching[i].Date.After(matching[j].Date)
		}
		return matching[i].CreatedAt.After(matching[j].CreatedAt)
	})

	total := len(matching)
	start := (params.Page - 1) * params.Size
	if start > total {
		start = total
	}
	end := start + params.Size
	if end > total {
		end = total
	}
	return matching[start:end], total, nil
}

func (r *memoryRepo) Update(_ context.Context, id, owner uuid.UUID, fn func(s *Session) error) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.sessions[id]
	if !ok || stored.UserID != owner {
		return nil, ErrSessionNotFound
	}

	s := cloneSession(stored)
	if err := fn(s); err != nil {
		return nil, err
	}
	r.sessions[id] = cloneSession(s)
	r.updates++
	return s, nil
}

func (r *memoryRepo) FindWorkoutExercise(_ context.Context, id, owner uuid.UUID) (*WorkoutExercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.UserID != owner || s.IsDeleted() {
			continue
		}
		for _, we := range s.Exercises {
			if we.ID == id {
				return cloneExercise(we), nil
			}
		}
	}
	return nil, ErrWorkoutExerciseNotFound
}

func cloneSession(s *Session) *Session {
	c := *s
	if s.Deletion != nil {
		d := *s.Deletion
		c.Deletion = &d
	}
	c.Exercises = make([]*WorkoutExercise, 0, len(s.Exercises))
	for _, we := range s.Exercises {
		c.Exercises = append(c.Exercises, cloneExercise(we))
	}
	return &c
}

func cloneExercise(we *WorkoutExercise) *WorkoutExercise {
	c := *we
	c.Sets = append([]ExerciseSet(nil), we.Sets...)
	return &c
}
