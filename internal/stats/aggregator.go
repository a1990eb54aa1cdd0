package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/catalog"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/units"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

type Query struct {
	ExerciseID uuid.UUID
	UserID     uuid.UUID
	// From and To are inclusive session date bounds
	From  *time.Time
	To    *time.Time
	Limit int
}

func (q Query) limit() int {
	if q.Limit <= 0 {
		return DefaultLimit
	}
	return q.Limit
}

type exerciseLookup interface {
	GetExercise(ctx context.Context, id uuid.UUID) (*catalog.Exercise, error)
}

// PsqlAggregator computes per session maxima in postgres.
type PsqlAggregator struct {
	db        *pgxpool.Pool
	exercises exerciseLookup
}

func NewPsqlAggregator(db *pgxpool.Pool, exercises exerciseLookup) *PsqlAggregator {
	return &PsqlAggregator{
		db:        db,
		exercises: exercises,
	}
}

// MaxWeightPerSession returns one point per non-deleted session of the user in which the exercise has sets,
// ordered by session date and creation time. The limit keeps the earliest points.
func (a *PsqlAggregator) MaxWeightPerSession(ctx context.Context, q Query) (_ []DataPoint, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stats.max_weight_per_session")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("exercise.id", q.ExerciseID.String()),
		attribute.Int("limit", q.limit()),
	)

	if _, err := a.exercises.GetExercise(ctx, q.ExerciseID); err != nil {
		return nil, err
	}

	rows, err := a.db.Query(
		ctx,
		`
			SELECT ws.id, ws.date, MAX(es.weight_grams)
			FROM workout_session ws
			JOIN workout_exercise we ON we.session_id = ws.id
			JOIN exercise_set es ON es.workout_exercise_id = we.id
			WHERE ws.user_id = $1
			AND ws.deleted_at IS NULL
			AND we.exercise_id = $2
			AND ($3::date IS NULL OR ws.date >= $3)
			AND ($4::date IS NULL OR ws.date <= $4)
			GROUP BY ws.id, ws.date, ws.created_at
			ORDER BY ws.date ASC, ws.created_at ASC, ws.id ASC
			LIMIT $5;`,
		q.UserID, q.ExerciseID, q.From, q.To, q.limit(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := []DataPoint{}
	for rows.Next() {
		var (
			p           DataPoint
			weightGrams int64
		)
		if err := rows.Scan(&p.SessionID, &p.Date, &weightGrams); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		p.MaxWeightKg = units.GramsToKg(weightGrams)
		points = append(points, p)
	}

	span.SetAttributes(attribute.Int("points", len(points)))
	return points, rows.Err()
}
