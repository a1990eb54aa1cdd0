package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) AddCategory(ctx context.Context, category MuscleCategory) (_ *MuscleCategory, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.category.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}

	if _, err := r.db.Exec(
		ctx,
		`INSERT INTO muscle_category (id, name, name_secondary) VALUES ($1, $2, $3);`,
		category.ID, category.Name, category.NameSecondary,
	); err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrNameTaken
		}
		return nil, err
	}

	span.SetAttributes(attribute.String("category.id", category.ID.String()))
	return &category, nil
}

func (r *Repo) GetCategory(ctx context.Context, id uuid.UUID) (_ *MuscleCategory, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.category.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id.String()))

	var c MuscleCategory
	if err := r.db.QueryRow(
		ctx,
		`SELECT id, name, name_secondary FROM muscle_category WHERE id = $1;`,
		id,
	).Scan(&c.ID, &c.Name, &c.NameSecondary); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMuscleCategoryNotFound
		}
		return nil, err
	}

	return &c, nil
}

func (r *Repo) ListCategories(ctx context.Context) (_ []MuscleCategory, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.category.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, name_secondary FROM muscle_category ORDER BY name;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []MuscleCategory
	for rows.Next() {
		var c MuscleCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.NameSecondary); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (r *Repo) DeleteCategory(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.category.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id.String()))

	tag, err := r.db.Exec(ctx, `DELETE FROM muscle_category WHERE id = $1;`, id)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return ErrMuscleCategoryInUse
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMuscleCategoryNotFound
	}
	return nil
}

func (r *Repo) AddExercise(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.exercise.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if exercise.ID == uuid.Nil {
		exercise.ID = uuid.New()
	}

	if _, err := r.db.Exec(
		ctx,
		`INSERT INTO exercise (id, category_id, name, name_secondary) VALUES ($1, $2, $3, $4);`,
		exercise.ID, exercise.CategoryID, exercise.Name, exercise.NameSecondary,
	); err != nil {
		switch {
		case pkg.IsUniqueViolationError(err):
			return nil, ErrNameTaken
		case pkg.IsForeignKeyViolationError(err):
			return nil, ErrMuscleCategoryNotFound
		}
		return nil, err
	}

	span.SetAttributes(attribute.String("exercise.id", exercise.ID.String()))
	return &exercise, nil
}

func (r *Repo) GetExercise(ctx context.Context, id uuid.UUID) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.exercise.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id.String()))

	var ex Exercise
	if err := r.db.QueryRow(
		ctx,
		`SELECT id, category_id, name, name_secondary FROM exercise WHERE id = $1;`,
		id,
	).Scan(&ex.ID, &ex.CategoryID, &ex.Name, &ex.NameSecondary); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	return &ex, nil
}

// ListExercises lists all exercises, or only the ones of the given category.
func (r *Repo) ListExercises(ctx context.Context, categoryID *uuid.UUID) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.exercise.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, category_id, name, name_secondary
			FROM exercise
			WHERE $1::uuid IS NULL OR category_id = $1
			ORDER BY name;`,
		categoryID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exercises []Exercise
	for rows.Next() {
		var ex Exercise
		if err := rows.Scan(&ex.ID, &ex.CategoryID, &ex.Name, &ex.NameSecondary); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		exercises = append(exercises, ex)
	}

	return exercises, rows.Err()
}

func (r *Repo) DeleteExercise(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.exercise.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id.String()))

	tag, err := r.db.Exec(ctx, `DELETE FROM exercise WHERE id = $1;`, id)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return ErrExerciseInUse
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}
