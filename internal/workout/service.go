package workout

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/liftlog/internal/catalog"
	"github.com/2beens/liftlog/internal/events"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=workout

type Repo interface {
	Create(ctx context.Context, s *Session) error
	GetWithExercises(ctx context.Context, id, owner uuid.UUID) (*Session, error)
	List(ctx context.Context, params ListParams) ([]*Session, int, error)
	Update(ctx context.Context, id, owner uuid.UUID, fn func(s *Session) error) (*Session, error)
	FindWorkoutExercise(ctx context.Context, id, owner uuid.UUID) (*WorkoutExercise, error)
}

type ExerciseLookup interface {
	GetExercise(ctx context.Context, id uuid.UUID) (*catalog.Exercise, error)
}

type NewServiceParams struct {
	Repo      Repo
	Exercises ExerciseLookup
	Locker    SessionLocker
	Publisher events.Publisher
	Metrics   *metrics.Manager
	Clock     Clock
	NewID     func() uuid.UUID
}

type Service struct {
	repo      Repo
	exercises ExerciseLookup
	locker    SessionLocker
	publisher events.Publisher
	metrics   *metrics.Manager
	clock     Clock
	newID     func() uuid.UUID
}

func NewService(params NewServiceParams) *Service {
	s := &Service{
		repo:      params.Repo,
		exercises: params.Exercises,
		locker:    params.Locker,
		publisher: params.Publisher,
		metrics:   params.Metrics,
		clock:     params.Clock,
		newID:     params.NewID,
	}
	if s.locker == nil {
		s.locker = NewLocalLocker()
	}
	if s.publisher == nil {
		s.publisher = events.NopPublisher{}
	}
	if s.clock == nil {
		s.clock = SystemClock
	}
	if s.newID == nil {
		s.newID = uuid.New
	}
	return s
}

func (s *Service) CreateSession(ctx context.Context, userID uuid.UUID, date time.Time, name, notes *string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workout.session.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	session := NewSession(s.newID(), userID, date, name, notes, s.clock())
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.CounterSessionsCreated.Inc()
	}
	s.publish(ctx, events.TypeSessionCreated, session, nil, 0)
	log.Debugf("session %s created for user %s", session.ID, userID)

	return session, nil
}

func (s *Service) GetSession(ctx context.Context, id, userID uuid.UUID) (*Session, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workout.session.get")
	defer span.End()
	return s.repo.GetWithExercises(ctx, id, userID)
}

func (s *Service) ListSessions(ctx context.Context, params ListParams) ([]*Session, int, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workout.session.list")
	defer span.End()
	return s.repo.List(ctx, params)
}

func (s *Service) UpdateSession(ctx context.Context, id, userID uuid.UUID, date time.Time, name, notes *string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workout.session.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	session, err := s.mutate(ctx, id, userID, func(session *Session) error {
		return session.Update(date, name, notes, s.clock())
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeSessionUpdated, session, nil, 0)
	return session, nil
}

func (s *Service) DeleteSession(ctx context.Context, id, userID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workout.session.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	session, err := s.mutate(ctx, id, userID, func(session *Session) error {
		return session.Delete(userID, s.clock())
	})
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.CounterSessionsDeleted.Inc()
	}
	s.publish(ctx, events.TypeSessionDeleted, session, nil, 0)
	log.Debugf("session %s deleted by user %s", id, userID)

	return nil
}

// AddExercise appends an exercise from the catalog, with optional sets, to a session of the user.
func (s *Service) AddExercise(ctx context.Context, sessionID, userID, exerciseID uuid.UUID, sets []SetInput) (_ *WorkoutExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workout.exercise.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("session.id", sessionID.String()),
		attribute.String("exercise.id", exerciseID.String()),
	)

	var added *WorkoutExercise
	session, err := s.mutate(ctx, sessionID, userID, func(session *Session) error {
		if session.IsDeleted() {
			return ErrSessionDeleted
		}
		if _, err := s.exercises.GetExercise(ctx, exerciseID); err != nil {
			return err
		}

		var err error
		added, err = session.AddExercise(s.newID(), exerciseID, sets, s.newID, s.clock())
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.CounterExercisesLogged.Inc()
		s.metrics.CounterSetsLogged.Add(float64(len(sets)))
	}
	s.publish(ctx, events.TypeExerciseAdded, session, &added.ID, len(added.Sets))

	return added, nil
}

func (s *Service) GetWorkoutExercise(ctx context.Context, id, userID uuid.UUID) (*WorkoutExercise, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workout.exercise.get")
	defer span.End()
	return s.repo.FindWorkoutExercise(ctx, id, userID)
}

// UpdateExerciseSets replaces all sets of a workout exercise.
func (s *Service) UpdateExerciseSets(ctx context.Context, id, userID uuid.UUID, sets []SetInput) (_ *WorkoutExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workout.exercise.update_sets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout_exercise.id", id.String()))

	we, err := s.repo.FindWorkoutExercise(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	var updated *WorkoutExercise
	session, err := s.mutate(ctx, we.SessionID, userID, func(session *Session) error {
		var err error
		updated, err = session.ReplaceSets(id, sets, s.newID, s.clock())
		return err
	})
	if err != nil {
		return nil, notFoundAsWorkoutExercise(err)
	}

	if s.metrics != nil {
		s.metrics.CounterSetsLogged.Add(float64(len(sets)))
	}
	s.publish(ctx, events.TypeExerciseSetsReplaced, session, &updated.ID, len(updated.Sets))

	return updated, nil
}

func (s *Service) RemoveExercise(ctx context.Context, id, userID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workout.exercise.remove")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout_exercise.id", id.String()))

	we, err := s.repo.FindWorkoutExercise(ctx, id, userID)
	if err != nil {
		return err
	}

	session, err := s.mutate(ctx, we.SessionID, userID, func(session *Session) error {
		return session.RemoveExercise(id)
	})
	if err != nil {
		return notFoundAsWorkoutExercise(err)
	}

	s.publish(ctx, events.TypeExerciseRemoved, session, &id, 0)
	return nil
}

// mutate runs fn on the session under the session lock, inside one repo transaction.
func (s *Service) mutate(ctx context.Context, sessionID, userID uuid.UUID, fn func(session *Session) error) (*Session, error) {
	unlock, err := s.locker.Lock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return s.repo.Update(ctx, sessionID, userID, fn)
}

func (s *Service) publish(ctx context.Context, eventType events.Type, session *Session, workoutExerciseID *uuid.UUID, setsCount int) {
	event := events.Event{
		ID:                s.newID(),
		Type:              eventType,
		SessionID:         session.ID,
		UserID:            session.UserID,
		WorkoutExerciseID: workoutExerciseID,
		SetsCount:         setsCount,
		OccurredAt:        s.clock(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Errorf("publish event %s for session %s: %s", eventType, session.ID, err)
		if s.metrics != nil {
			s.metrics.CounterEventPublishFailed.Inc()
		}
	}
}

// the session may vanish between the lookup and the lock; callers asked about a workout exercise
func notFoundAsWorkoutExercise(err error) error {
	if errors.Is(err, ErrSessionNotFound) {
		return ErrWorkoutExerciseNotFound
	}
	return err
}
