package workout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/catalog"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type ListParams struct {
	UserID uuid.UUID
	From   *time.Time
	To     *time.Time
	Page   int
	Size   int
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PsqlRepo struct {
	db *pgxpool.Pool
}

func NewPsqlRepo(db *pgxpool.Pool) *PsqlRepo {
	return &PsqlRepo{
		db: db,
	}
}

func (r *PsqlRepo) Create(ctx context.Context, s *Session) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.session.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", s.ID.String()))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO workout_session (id, user_id, date, name, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);`,
		s.ID, s.UserID, s.Date, s.Name, s.Notes, s.CreatedAt, s.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	if err := persistChildren(ctx, tx, s, nil); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetWithExercises returns a non-deleted session of the owner with all its exercises and sets.
func (r *PsqlRepo) GetWithExercises(ctx context.Context, id, owner uuid.UUID) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.session.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", id.String()))

	s, err := loadSession(ctx, r.db, id, false)
	if err != nil {
		return nil, err
	}
	if s.UserID != owner || s.IsDeleted() {
		return nil, ErrSessionNotFound
	}
	if err := loadExercises(ctx, r.db, s); err != nil {
		return nil, err
	}

	return s, nil
}

// List returns the non-deleted sessions of a user, newest first, without their exercises.
func (r *PsqlRepo) List(ctx context.Context, params ListParams) (_ []*Session, _ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.session.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("page", params.Page),
		attribute.Int("size", params.Size),
	)

	const filter = `
		WHERE user_id = $1
		AND deleted_at IS NULL
		AND ($2::date IS NULL OR date >= $2)
		AND ($3::date IS NULL OR date <= $3)`

	var total int
	if err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM workout_session `+filter+`;`,
		params.UserID, params.From, params.To,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sessions: %w", err)
	}

	offset := (params.Page - 1) * params.Size
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, date, name, notes, deleted_at, deleted_by, created_at, updated_at
		FROM workout_session `+filter+`
		ORDER BY date DESC, created_at DESC
		LIMIT $4 OFFSET $5;`,
		params.UserID, params.From, params.To, params.Size, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("rows scan: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, total, rows.Err()
}

// Update loads the session (deleted ones included) with its row locked, applies fn and stores the
// result in the same transaction. Nothing is stored if fn fails.
func (r *PsqlRepo) Update(ctx context.Context, id, owner uuid.UUID, fn func(s *Session) error) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.session.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", id.String()))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	s, err := loadSession(ctx, tx, id, true)
	if err != nil {
		return nil, err
	}
	if s.UserID != owner {
		return nil, ErrSessionNotFound
	}
	if err := loadExercises(ctx, tx, s); err != nil {
		return nil, err
	}

	before := snapshot(s)
	if err := fn(s); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(
		ctx,
		`UPDATE workout_session
		SET date = $2, name = $3, notes = $4, deleted_at = $5, deleted_by = $6, updated_at = $7
		WHERE id = $1;`,
		s.ID, s.Date, s.Name, s.Notes, deletedAt(s), deletedBy(s), s.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	if err := persistChildren(ctx, tx, s, before); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return s, nil
}

// FindWorkoutExercise finds a workout exercise through a non-deleted session owned by owner.
func (r *PsqlRepo) FindWorkoutExercise(ctx context.Context, id, owner uuid.UUID) (_ *WorkoutExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.exercise.find")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout_exercise.id", id.String()))

	we := &WorkoutExercise{}
	if err := r.db.QueryRow(
		ctx,
		`SELECT we.id, we.session_id, we.exercise_id, we.order_in_workout, we.created_at
		FROM workout_exercise we
		JOIN workout_session ws ON ws.id = we.session_id
		WHERE we.id = $1 AND ws.user_id = $2 AND ws.deleted_at IS NULL;`,
		id, owner,
	).Scan(&we.ID, &we.SessionID, &we.ExerciseID, &we.OrderInWorkout, &we.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutExerciseNotFound
		}
		return nil, err
	}

	sets, err := loadSets(ctx, r.db, []uuid.UUID{we.ID})
	if err != nil {
		return nil, err
	}
	we.Sets = sets[we.ID]

	return we, nil
}

func loadSession(ctx context.Context, q querier, id uuid.UUID, forUpdate bool) (*Session, error) {
	query := `SELECT id, user_id, date, name, notes, deleted_at, deleted_by, created_at, updated_at
		FROM workout_session WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	s, err := scanSession(q.QueryRow(ctx, query+`;`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return s, nil
}

func scanSession(row pgx.Row) (*Session, error) {
	var (
		s         Session
		deletedAt *time.Time
		deletedBy *uuid.UUID
	)
	if err := row.Scan(
		&s.ID, &s.UserID, &s.Date, &s.Name, &s.Notes,
		&deletedAt, &deletedBy, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if deletedAt != nil && deletedBy != nil {
		s.Deletion = &Deletion{At: *deletedAt, By: *deletedBy}
	}
	return &s, nil
}

func loadExercises(ctx context.Context, q querier, s *Session) error {
	rows, err := q.Query(
		ctx,
		`SELECT id, session_id, exercise_id, order_in_workout, created_at
		FROM workout_exercise
		WHERE session_id = $1
		ORDER BY order_in_workout, created_at;`,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("query exercises: %w", err)
	}
	defer rows.Close()

	s.Exercises = nil
	var ids []uuid.UUID
	for rows.Next() {
		we := &WorkoutExercise{}
		if err := rows.Scan(&we.ID, &we.SessionID, &we.ExerciseID, &we.OrderInWorkout, &we.CreatedAt); err != nil {
			return fmt.Errorf("rows scan: %w", err)
		}
		s.Exercises = append(s.Exercises, we)
		ids = append(ids, we.ID)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	sets, err := loadSets(ctx, q, ids)
	if err != nil {
		return err
	}
	for _, we := range s.Exercises {
		we.Sets = sets[we.ID]
	}
	return nil
}

func loadSets(ctx context.Context, q querier, workoutExerciseIDs []uuid.UUID) (map[uuid.UUID][]ExerciseSet, error) {
	rows, err := q.Query(
		ctx,
		`SELECT id, workout_exercise_id, sets_count, reps, weight_grams, created_at
		FROM exercise_set
		WHERE workout_exercise_id = ANY($1)
		ORDER BY workout_exercise_id, position;`,
		workoutExerciseIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("query sets: %w", err)
	}
	defer rows.Close()

	sets := make(map[uuid.UUID][]ExerciseSet)
	for rows.Next() {
		var es ExerciseSet
		if err := rows.Scan(&es.ID, &es.WorkoutExerciseID, &es.SetsCount, &es.Reps, &es.WeightGrams, &es.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		sets[es.WorkoutExerciseID] = append(sets[es.WorkoutExerciseID], es)
	}

	return sets, rows.Err()
}

// snapshot maps each loaded workout exercise to the ids of its sets.
func snapshot(s *Session) map[uuid.UUID][]uuid.UUID {
	snap := make(map[uuid.UUID][]uuid.UUID, len(s.Exercises))
	for _, we := range s.Exercises {
		ids := make([]uuid.UUID, 0, len(we.Sets))
		for _, es := range we.Sets {
			ids = append(ids, es.ID)
		}
		snap[we.ID] = ids
	}
	return snap
}

// persistChildren writes the difference between the loaded snapshot and the current aggregate.
func persistChildren(ctx context.Context, tx pgx.Tx, s *Session, before map[uuid.UUID][]uuid.UUID) error {
	batch := &pgx.Batch{}

	keep := make(map[uuid.UUID]bool, len(s.Exercises))
	for _, we := range s.Exercises {
		keep[we.ID] = true
	}
	for id := range before {
		if !keep[id] {
			batch.Queue(`DELETE FROM workout_exercise WHERE id = $1;`, id)
		}
	}

	for _, we := range s.Exercises {
		oldSetIDs, existed := before[we.ID]
		if !existed {
			batch.Queue(
				`INSERT INTO workout_exercise (id, session_id, exercise_id, order_in_workout, created_at)
				VALUES ($1, $2, $3, $4, $5);`,
				we.ID, we.SessionID, we.ExerciseID, we.OrderInWorkout, we.CreatedAt,
			)
		} else if sameSets(oldSetIDs, we.Sets) {
			continue
		} else {
			batch.Queue(`DELETE FROM exercise_set WHERE workout_exercise_id = $1;`, we.ID)
		}

		for i, es := range we.Sets {
			batch.Queue(
				`INSERT INTO exercise_set (id, workout_exercise_id, position, sets_count, reps, weight_grams, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7);`,
				es.ID, es.WorkoutExerciseID, i, es.SetsCount, es.Reps, es.WeightGrams, es.CreatedAt,
			)
		}
	}

	if batch.Len() == 0 {
		return nil
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if pkg.IsForeignKeyViolationError(err) && pkg.ConstraintName(err) == "workout_exercise_exercise_id_fkey" {
			return catalog.ErrExerciseNotFound
		}
		return fmt.Errorf("persist session children: %w", err)
	}
	return nil
}

func sameSets(ids []uuid.UUID, sets []ExerciseSet) bool {
	if len(ids) != len(sets) {
		return false
	}
	for i := range ids {
		if ids[i] != sets[i].ID {
			return false
		}
	}
	return true
}

func deletedAt(s *Session) *time.Time {
	if s.Deletion == nil {
		return nil
	}
	return &s.Deletion.At
}

func deletedBy(s *Session) *uuid.UUID {
	if s.Deletion == nil {
		return nil
	}
	return &s.Deletion.By
}
