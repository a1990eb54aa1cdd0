package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const MinPasswordLength = 8

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=users

type registerer interface {
	Register(ctx context.Context, email, password string) (*User, error)
}

type Handler struct {
	service registerer
}

func NewHandler(service registerer) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/users/register", handler.HandleRegister).Methods("POST", "OPTIONS").Name("register-user")
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (handler *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.register")
	defer span.End()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_input", "invalid email")
		return
	}
	if len(req.Password) < MinPasswordLength {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_input", "password too short")
		return
	}

	user, err := handler.service.Register(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			pkg.WriteJSONError(w, http.StatusConflict, "email_taken", err.Error())
			return
		}
		log.Errorf("register user: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	pkg.WriteJSON(w, http.StatusCreated, user)
}
