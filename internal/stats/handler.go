package stats

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/catalog"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=stats_test

type statsProvider interface {
	ExerciseStats(ctx context.Context, q Query) (*ExerciseStats, error)
}

type Handler struct {
	stats statsProvider
}

func NewHandler(stats statsProvider) *Handler {
	return &Handler{
		stats: stats,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/stats/exercises/{id}", handler.HandleExerciseStats).Methods("GET", "OPTIONS").Name("exercise-stats")
}

type dataPointResponse struct {
	Date        string    `json:"date"`
	SessionID   uuid.UUID `json:"sessionId"`
	MaxWeightKg float64   `json:"maxWeightKg"`
}

type summaryResponse struct {
	TotalSessions      int     `json:"totalSessions"`
	PersonalRecord     float64 `json:"personalRecord"`
	PRDate             string  `json:"prDate"`
	FirstWeight        float64 `json:"firstWeight"`
	LatestWeight       float64 `json:"latestWeight"`
	ProgressPercentage float64 `json:"progressPercentage"`
}

type exerciseStatsResponse struct {
	ExerciseID uuid.UUID           `json:"exerciseId"`
	DataPoints []dataPointResponse `json:"dataPoints"`
	Summary    *summaryResponse    `json:"summary"`
}

func (handler *Handler) HandleExerciseStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.exercise")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, http.StatusUnauthorized, "unauthorized", "no logged user")
		return
	}

	exerciseID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_input", "invalid exercise id")
		return
	}

	q, err := parseQuery(r, exerciseID, userID)
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	result, err := handler.stats.ExerciseStats(ctx, q)
	if err != nil {
		if errors.Is(err, catalog.ErrExerciseNotFound) {
			pkg.WriteJSONError(w, http.StatusNotFound, "exercise_not_found", err.Error())
			return
		}
		log.Errorf("exercise stats [%s]: %s", exerciseID, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, toResponse(result))
}

func parseQuery(r *http.Request, exerciseID, userID uuid.UUID) (Query, error) {
	q := Query{
		ExerciseID: exerciseID,
		UserID:     userID,
		Limit:      DefaultLimit,
	}

	params := r.URL.Query()
	from, err := pkg.ParseOptionalDate(params.Get("from"))
	if err != nil {
		return q, err
	}
	to, err := pkg.ParseOptionalDate(params.Get("to"))
	if err != nil {
		return q, err
	}
	if from != nil && to != nil && from.After(*to) {
		return q, errors.New("from must not be after to")
	}
	q.From, q.To = from, to

	if limitParam := params.Get("limit"); limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil || limit < 1 || limit > MaxLimit {
			return q, errors.New("limit must be between 1 and 1000")
		}
		q.Limit = limit
	}

	return q, nil
}

func toResponse(result *ExerciseStats) exerciseStatsResponse {
	resp := exerciseStatsResponse{
		ExerciseID: result.ExerciseID,
		DataPoints: make([]dataPointResponse, 0, len(result.Points)),
	}
	for _, p := range result.Points {
		resp.DataPoints = append(resp.DataPoints, dataPointResponse{
			Date:        formatDate(p.Date),
			SessionID:   p.SessionID,
			MaxWeightKg: p.MaxWeightKg,
		})
	}
	if s := result.Summary; s != nil {
		resp.Summary = &summaryResponse{
			TotalSessions:      s.TotalSessions,
			PersonalRecord:     s.PersonalRecord,
			PRDate:             formatDate(s.PRDate),
			FirstWeight:        s.FirstWeight,
			LatestWeight:       s.LatestWeight,
			ProgressPercentage: s.ProgressPercentage,
		}
	}
	return resp
}

func formatDate(t time.Time) string {
	return t.Format(pkg.DateLayout)
}
