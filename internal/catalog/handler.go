package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=catalog_test

type catalogRepo interface {
	AddCategory(ctx context.Context, category MuscleCategory) (*MuscleCategory, error)
	ListCategories(ctx context.Context) ([]MuscleCategory, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	AddExercise(ctx context.Context, exercise Exercise) (*Exercise, error)
	ListExercises(ctx context.Context, categoryID *uuid.UUID) ([]Exercise, error)
	DeleteExercise(ctx context.Context, id uuid.UUID) error
}

type exerciseLookup interface {
	GetExercise(ctx context.Context, id uuid.UUID) (*Exercise, error)
	Invalidate(id uuid.UUID)
}

type Handler struct {
	repo   catalogRepo
	lookup exerciseLookup
}

func NewHandler(repo catalogRepo, lookup exerciseLookup) *Handler {
	return &Handler{
		repo:   repo,
		lookup: lookup,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/catalog/categories", handler.HandleListCategories).Methods("GET", "OPTIONS").Name("list-categories")
	router.HandleFunc("/catalog/categories", handler.HandleAddCategory).Methods("POST", "OPTIONS").Name("new-category")
	router.HandleFunc("/catalog/categories/{id}", handler.HandleDeleteCategory).Methods("DELETE", "OPTIONS").Name("delete-category")
	router.HandleFunc("/catalog/exercises", handler.HandleListExercises).Methods("GET", "OPTIONS").Name("list-catalog-exercises")
	router.HandleFunc("/catalog/exercises", handler.HandleAddExercise).Methods("POST", "OPTIONS").Name("new-catalog-exercise")
	router.HandleFunc("/catalog/exercises/{id}", handler.HandleGetExercise).Methods("GET", "OPTIONS").Name("get-catalog-exercise")
	router.HandleFunc("/catalog/exercises/{id}", handler.HandleDeleteExercise).Methods("DELETE", "OPTIONS").Name("delete-catalog-exercise")
}

type addCategoryRequest struct {
	Name          string `json:"name"`
	NameSecondary string `json:"nameSecondary"`
}

type addExerciseRequest struct {
	CategoryID    uuid.UUID `json:"categoryId"`
	Name          string    `json:"name"`
	NameSecondary *string   `json:"nameSecondary"`
}

func (handler *Handler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.categories.list")
	defer span.End()

	categories, err := handler.repo.ListCategories(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	if categories == nil {
		categories = []MuscleCategory{}
	}

	pkg.WriteJSON(w, http.StatusOK, map[string]any{
		"categories": categories,
		"total":      len(categories),
	})
}

func (handler *Handler) HandleAddCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.categories.add")
	defer span.End()

	var req addCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new category, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.NameSecondary = strings.TrimSpace(req.NameSecondary)
	if req.Name == "" || req.NameSecondary == "" {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_input", "name and nameSecondary are required")
		return
	}

	category, err := handler.repo.AddCategory(ctx, MuscleCategory{
		Name:          req.Name,
		NameSecondary: req.NameSecondary,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	log.Debugf("new muscle category added: %s [%s]", category.Name, category.ID)
	pkg.WriteJSON(w, http.StatusCreated, category)
}

func (handler *Handler) HandleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.categories.delete")
	defer span.End()

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_input", "invalid category id")
		return
	}

	if err := handler.repo.DeleteCategory(ctx, id); err != nil {
		writeError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, map[string]string{"deleted": id.String()})
}

func (handler *Handler) HandleListExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.exercises.list")
	defer span.End()

	var categoryID *uuid.UUID
	if categoryParam := r.URL.Query().Get("category"); categoryParam != "" {
		id, err := uuid.Parse(categoryParam)
		if err != nil {
			pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_input", "invalid category id")
			return
		}
		categoryID = &id
	}

	exercises, err := handler.repo.ListExercises(ctx, categoryID)
	if err != nil {
		writeError(w, err)
		return
	}
	if exercises == nil {
		exercises = []Exercise{}
	}

	pkg.WriteJSON(w, http.StatusOK, map[string]any{
		"exercises": exercises,
		"total":     len(exercises),
	})
}

func (handler *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.exercises.add")
	defer span.End()

	var req addExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new catalog exercise, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.CategoryID == uuid.Nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_input", "name and categoryId are required")
		return
	}
	if req.NameSecondary != nil && strings.TrimSpace(*req.NameSecondary) == "" {
		req.NameSecondary = nil
	}

	exercise, err := handler.repo.AddExercise(ctx, Exercise{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		NameSecondary: req.NameSecondary,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	log.Debugf("new catalog exercise added: %s [%s]", exercise.Name, exercise.ID)
	pkg.WriteJSON(w, http.StatusCreated, exercise)
}

func (handler *Handler) HandleGetExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.exercises.get")
	defer span.End()

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_input", "invalid exercise id")
		return
	}

	exercise, err := handler.lookup.GetExercise(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, exercise)
}

func (handler *Handler) HandleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.exercises.delete")
	defer span.End()

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_input", "invalid exercise id")
		return
	}

	if err := handler.repo.DeleteExercise(ctx, id); err != nil {
		writeError(w, err)
		return
	}
	handler.lookup.Invalidate(id)

	pkg.WriteJSON(w, http.StatusOK, map[string]string{"deleted": id.String()})
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrExerciseNotFound):
		pkg.WriteJSONError(w, http.StatusNotFound, "exercise_not_found", err.Error())
	case errors.Is(err, ErrMuscleCategoryNotFound):
		pkg.WriteJSONError(w, http.StatusNotFound, "muscle_category_not_found", err.Error())
	case errors.Is(err, ErrExerciseInUse):
		pkg.WriteJSONError(w, http.StatusConflict, "exercise_in_use", err.Error())
	case errors.Is(err, ErrMuscleCategoryInUse):
		pkg.WriteJSONError(w, http.StatusConflict, "muscle_category_in_use", err.Error())
	case errors.Is(err, ErrNameTaken):
		pkg.WriteJSONError(w, http.StatusConflict, "name_taken", err.Error())
	default:
		log.Errorf("catalog request failed: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
