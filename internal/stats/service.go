package stats

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/liftlog/internal/catalog"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/google/uuid"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=stats

type aggregator interface {
	MaxWeightPerSession(ctx context.Context, q Query) ([]DataPoint, error)
}

type ExerciseStats struct {
	ExerciseID uuid.UUID
	Points     []DataPoint
	// nil when there are no points
	Summary *Summary
}

type Service struct {
	aggregator aggregator
	metrics    *metrics.Manager
}

func NewService(aggregator aggregator, metricsManager *metrics.Manager) *Service {
	return &Service{
		aggregator: aggregator,
		metrics:    metricsManager,
	}
}

func (s *Service) ExerciseStats(ctx context.Context, q Query) (_ *ExerciseStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.stats.exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	begin := time.Now()
	defer func() {
		s.observe(time.Since(begin), err)
	}()

	points, err := s.aggregator.MaxWeightPerSession(ctx, q)
	if err != nil {
		return nil, err
	}

	result := &ExerciseStats{
		ExerciseID: q.ExerciseID,
		Points:     points,
	}
	if len(points) == 0 {
		return result, nil
	}

	summary, err := Summarize(points)
	if err != nil {
		return nil, err
	}
	result.Summary = &summary

	return result, nil
}

func (s *Service) observe(took time.Duration, err error) {
	if s.metrics == nil {
		return
	}

	result := "ok"
	switch {
	case errors.Is(err, catalog.ErrExerciseNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	}
	s.metrics.CounterStatsQueries.WithLabelValues(result).Inc()
	s.metrics.HistStatsQueryDuration.Observe(took.Seconds())
}
