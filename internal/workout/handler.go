package workout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/catalog"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workout_test

const (
	MinReps         = 1
	MaxReps         = 100
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type workoutService interface {
	CreateSession(ctx context.Context, userID uuid.UUID, date time.Time, name, notes *string) (*Session, error)
	GetSession(ctx context.Context, id, userID uuid.UUID) (*Session, error)
	ListSessions(ctx context.Context, params ListParams) ([]*Session, int, error)
	UpdateSession(ctx context.Context, id, userID uuid.UUID, date time.Time, name, notes *string) (*Session, error)
	DeleteSession(ctx context.Context, id, userID uuid.UUID) error
	AddExercise(ctx context.Context, sessionID, userID, exerciseID uuid.UUID, sets []SetInput) (*WorkoutExercise, error)
	GetWorkoutExercise(ctx context.Context, id, userID uuid.UUID) (*WorkoutExercise, error)
	UpdateExerciseSets(ctx context.Context, id, userID uuid.UUID, sets []SetInput) (*WorkoutExercise, error)
	RemoveExercise(ctx context.Context, id, userID uuid.UUID) error
}

type Handler struct {
	service workoutService
}

func NewHandler(service workoutService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/sessions", handler.HandleCreateSession).Methods("POST", "OPTIONS").Name("new-session")
	router.HandleFunc("/sessions", handler.HandleListSessions).Methods("GET", "OPTIONS").Name("list-sessions")
	router.HandleFunc("/sessions/{id}", handler.HandleGetSession).Methods("GET", "OPTIONS").Name("get-session")
	router.HandleFunc("/sessions/{id}", handler.HandleUpdateSession).Methods("PUT", "OPTIONS").Name("update-session")
	router.HandleFunc("/sessions/{id}", handler.HandleDeleteSession).Methods("DELETE", "OPTIONS").Name("delete-session")
	router.HandleFunc("/sessions/{id}/exercises", handler.HandleAddExercise).Methods("POST", "OPTIONS").Name("new-workout-exercise")
	router.HandleFunc("/workout-exercises/{id}", handler.HandleGetWorkoutExercise).Methods("GET", "OPTIONS").Name("get-workout-exercise")
	router.HandleFunc("/workout-exercises/{id}/sets", handler.HandleReplaceSets).Methods("PUT", "OPTIONS").Name("replace-sets")
	router.HandleFunc("/workout-exercises/{id}", handler.HandleRemoveExercise).Methods("DELETE", "OPTIONS").Name("remove-workout-exercise")
}

type sessionRequest struct {
	Date  string  `json:"date"`
	Name  *string `json:"name"`
	Notes *string `json:"notes"`
}

type setRequest struct {
	SetsCount int     `json:"setsCount"`
	Reps      int     `json:"reps"`
	WeightKg  float64 `json:"weightKg"`
}

type addExerciseRequest struct {
	ExerciseID uuid.UUID    `json:"exerciseId"`
	Sets       []setRequest `json:"sets"`
}

type replaceSetsRequest struct {
	Sets []setRequest `json:"sets"`
}

type setResponse struct {
	ID        uuid.UUID `json:"id"`
	SetsCount int       `json:"setsCount"`
	Reps      int       `json:"reps"`
	WeightKg  float64   `json:"weightKg"`
	CreatedAt time.Time `json:"createdAt"`
}

type workoutExerciseResponse struct {
	ID             uuid.UUID     `json:"id"`
	SessionID      uuid.UUID     `json:"sessionId"`
	ExerciseID     uuid.UUID     `json:"exerciseId"`
	OrderInWorkout int           `json:"orderInWorkout"`
	CreatedAt      time.Time     `json:"createdAt"`
	Sets           []setResponse `json:"sets"`
}

type sessionResponse struct {
	ID        uuid.UUID                 `json:"id"`
	Date      string                    `json:"date"`
	Name      *string                   `json:"name"`
	Notes     *string                   `json:"notes"`
	CreatedAt time.Time                 `json:"createdAt"`
	UpdatedAt time.Time                 `json:"updatedAt"`
	Exercises []workoutExerciseResponse `json:"exercises,omitempty"`
}

func (handler *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.session.create")
	defer span.End()

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	date, name, notes, err := decodeSessionRequest(r)
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	session, err := handler.service.CreateSession(ctx, userID, date, name, notes)
	if err != nil {
		writeError(w, err)
		return
	}

	log.Debugf("new workout session [%s] for user [%s]", session.ID, userID)
	pkg.WriteJSON(w, http.StatusCreated, toSessionResponse(session, false))
}

func (handler *Handler) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.session.list")
	defer span.End()

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	params, err := parseListParams(r, userID)
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	sessions, total, err := handler.service.ListSessions(ctx, params)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]sessionResponse, 0, len(sessions))
	for _, s := range sessions {
		resp = append(resp, toSessionResponse(s, false))
	}
	pkg.WriteJSON(w, http.StatusOK, map[string]any{
		"sessions": resp,
		"total":    total,
		"page":     params.Page,
		"size":     params.Size,
	})
}

func (handler *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.session.get")
	defer span.End()

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "session")
	if !ok {
		return
	}

	session, err := handler.service.GetSession(ctx, id, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, toSessionResponse(session, true))
}

func (handler *Handler) HandleUpdateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.session.update")
	defer span.End()

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "session")
	if !ok {
		return
	}

	date, name, notes, err := decodeSessionRequest(r)
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	session, err := handler.service.UpdateSession(ctx, id, userID, date, name, notes)
	if err != nil {
		writeError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, toSessionResponse(session, true))
}

func (handler *Handler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.session.delete")
	defer span.End()

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "session")
	if !ok {
		return
	}

	if err := handler.service.DeleteSession(ctx, id, userID); err != nil {
		writeError(w, err)
		return
	}

	log.Debugf("workout session [%s] deleted by [%s]", id, userID)
	pkg.WriteJSON(w, http.StatusOK, map[string]string{"deleted": id.String()})
}

func (handler *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.exercise.add")
	defer span.End()

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}
	sessionID, ok := pathID(w, r, "session")
	if !ok {
		return
	}

	var req addExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("add workout exercise, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	if req.ExerciseID == uuid.Nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_input", "exerciseId is required")
		return
	}
	sets, err := toSetInputs(req.Sets, 0)
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	we, err := handler.service.AddExercise(ctx, sessionID, userID, req.ExerciseID, sets)
	if err != nil {
		writeError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusCreated, toWorkoutExerciseResponse(we))
}

func (handler *Handler) HandleGetWorkoutExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.exercise.get")
	defer span.End()

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "workout exercise")
	if !ok {
		return
	}

	we, err := handler.service.GetWorkoutExercise(ctx, id, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, toWorkoutExerciseResponse(we))
}

func (handler *Handler) HandleReplaceSets(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.exercise.sets")
	defer span.End()

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "workout exercise")
	if !ok {
		return
	}

	var req replaceSetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("replace sets, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}
	sets, err := toSetInputs(req.Sets, 1)
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	we, err := handler.service.UpdateExerciseSets(ctx, id, userID, sets)
	if err != nil {
		writeError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, toWorkoutExerciseResponse(we))
}

func (handler *Handler) HandleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.exercise.remove")
	defer span.End()

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "workout exercise")
	if !ok {
		return
	}

	if err := handler.service.RemoveExercise(ctx, id, userID); err != nil {
		writeError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, map[string]string{"deleted": id.String()})
}

func requestUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		pkg.WriteJSONError(w, http.StatusUnauthorized, "unauthorized", "no logged user")
	}
	return userID, ok
}

func pathID(w http.ResponseWriter, r *http.Request, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_input", "invalid "+what+" id")
		return uuid.Nil, false
	}
	return id, true
}

func decodeSessionRequest(r *http.Request) (time.Time, *string, *string, error) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("session request, unmarshal json params: %s", err)
		return time.Time{}, nil, nil, errors.New("invalid request body")
	}

	date, err := pkg.ParseOptionalDate(req.Date)
	if err != nil {
		return time.Time{}, nil, nil, err
	}
	if date == nil {
		return time.Time{}, nil, nil, errors.New("date is required")
	}

	return *date, blankAsNil(req.Name), blankAsNil(req.Notes), nil
}

func blankAsNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

func parseListParams(r *http.Request, userID uuid.UUID) (ListParams, error) {
	params := ListParams{
		UserID: userID,
		Page:   1,
		Size:   DefaultPageSize,
	}

	query := r.URL.Query()
	from, err := pkg.ParseOptionalDate(query.Get("from"))
	if err != nil {
		return params, err
	}
	to, err := pkg.ParseOptionalDate(query.Get("to"))
	if err != nil {
		return params, err
	}
	if from != nil && to != nil && from.After(*to) {
		return params, errors.New("from must not be after to")
	}
	params.From, params.To = from, to

	if pageParam := query.Get("page"); pageParam != "" {
		page, err := strconv.Atoi(pageParam)
		if err != nil || page < 1 {
			return params, errors.New("page must be a positive number")
		}
		params.Page = page
	}
	if sizeParam := query.Get("size"); sizeParam != "" {
		size, err := strconv.Atoi(sizeParam)
		if err != nil || size < 1 || size > MaxPageSize {
			return params, fmt.Errorf("size must be between 1 and %d", MaxPageSize)
		}
		params.Size = size
	}

	return params, nil
}

func toSetInputs(sets []setRequest, minSets int) ([]SetInput, error) {
	if len(sets) < minSets || len(sets) > MaxSetsPerExercise {
		return nil, fmt.Errorf("between %d and %d sets are required", minSets, MaxSetsPerExercise)
	}

	inputs := make([]SetInput, 0, len(sets))
	for i, s := range sets {
		switch {
		case s.SetsCount < 1:
			return nil, fmt.Errorf("set %d: setsCount must be at least 1", i+1)
		case s.Reps < MinReps || s.Reps > MaxReps:
			return nil, fmt.Errorf("set %d: reps must be between %d and %d", i+1, MinReps, MaxReps)
		case s.WeightKg < 0:
			return nil, fmt.Errorf("set %d: weightKg must not be negative", i+1)
		}
		inputs = append(inputs, SetInput{
			SetsCount: s.SetsCount,
			Reps:      s.Reps,
			WeightKg:  s.WeightKg,
		})
	}
	return inputs, nil
}

func toSessionResponse(s *Session, withExercises bool) sessionResponse {
	resp := sessionResponse{
		ID:        s.ID,
		Date:      s.Date.Format(pkg.DateLayout),
		Name:      s.Name,
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if withExercises {
		resp.Exercises = make([]workoutExerciseResponse, 0, len(s.Exercises))
		for _, we := range s.Exercises {
			resp.Exercises = append(resp.Exercises, toWorkoutExerciseResponse(we))
		}
	}
	return resp
}

func toWorkoutExerciseResponse(we *WorkoutExercise) workoutExerciseResponse {
	resp := workoutExerciseResponse{
		ID:             we.ID,
		SessionID:      we.SessionID,
		ExerciseID:     we.ExerciseID,
		OrderInWorkout: we.OrderInWorkout,
		CreatedAt:      we.CreatedAt,
		Sets:           make([]setResponse, 0, len(we.Sets)),
	}
	for _, set := range we.Sets {
		resp.Sets = append(resp.Sets, setResponse{
			ID:        set.ID,
			SetsCount: set.SetsCount,
			Reps:      set.Reps,
			WeightKg:  set.WeightKg(),
			CreatedAt: set.CreatedAt,
		})
	}
	return resp
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrWorkoutExerciseNotFound):
		pkg.WriteJSONError(w, http.StatusNotFound, "workout_exercise_not_found", err.Error())
	case errors.Is(err, ErrSessionNotFound):
		pkg.WriteJSONError(w, http.StatusNotFound, "session_not_found", err.Error())
	case errors.Is(err, catalog.ErrExerciseNotFound):
		pkg.WriteJSONError(w, http.StatusNotFound, "exercise_not_found", err.Error())
	case errors.Is(err, ErrSessionAlreadyDeleted):
		pkg.WriteJSONError(w, http.StatusConflict, "session_already_deleted", err.Error())
	case errors.Is(err, ErrInvalidSets):
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_input", err.Error())
	default:
		log.Errorf("workout request failed: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
