package stats

import (
	"errors"
	"time"

	"github.com/2beens/liftlog/internal/units"

	"github.com/google/uuid"
)

var ErrEmptySeries = errors.New("summarize: empty data point series")

// DataPoint is the heaviest set of one exercise within one session.
type DataPoint struct {
	Date        time.Time
	SessionID   uuid.UUID
	MaxWeightKg float64
}

type Summary struct {
	TotalSessions      int
	PersonalRecord     float64
	PRDate             time.Time
	FirstWeight        float64
	LatestWeight       float64
	ProgressPercentage float64
}

// Summarize reduces chronologically ordered points. It does not sort them.
// The personal record date is the date of the first point reaching the maximum.
func Summarize(points []DataPoint) (Summary, error) {
	if len(points) == 0 {
		return Summary{}, ErrEmptySeries
	}

	pr := points[0]
	for _, p := range points[1:] {
		if p.MaxWeightKg > pr.MaxWeightKg {
			pr = p
		}
	}

	first := points[0].MaxWeightKg
	latest := points[len(points)-1].MaxWeightKg

	return Summary{
		TotalSessions:      len(points),
		PersonalRecord:     pr.MaxWeightKg,
		PRDate:             pr.Date,
		FirstWeight:        first,
		LatestWeight:       latest,
		ProgressPercentage: progressPercentage(first, latest),
	}, nil
}

// progressPercentage is 0 for a non-positive baseline. Weights are whole grams, so the
// percentage is computed in integer hundredths and rounded half away from zero.
func progressPercentage(first, latest float64) float64 {
	f := units.KgToGrams(first)
	if f <= 0 {
		return 0
	}
	l := units.KgToGrams(latest)

	num := (l - f) * 10000
	sign := int64(1)
	if num < 0 {
		sign = -1
	}
	hundredths := (2*num + sign*f) / (2 * f)
	return float64(hundredths) / 100
}
