package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/users"
	"github.com/2beens/liftlog/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=auth

type authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*users.User, error)
}

type sessionStore interface {
	Login(ctx context.Context, userID uuid.UUID, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
}

type Handler struct {
	users    authenticator
	sessions sessionStore
}

func NewHandler(users authenticator, sessions sessionStore) *Handler {
	return &Handler{
		users:    users,
		sessions: sessions,
	}
}

// SetupRoutes registers login and logout. The login route gets the given middlewares (rate limiting).
func (handler *Handler) SetupRoutes(router *mux.Router, loginMiddlewares ...mux.MiddlewareFunc) {
	var login http.Handler = http.HandlerFunc(handler.HandleLogin)
	for i := len(loginMiddlewares) - 1; i >= 0; i-- {
		login = loginMiddlewares[i](login)
	}
	router.Handle("/a/login", login).Methods("POST", "OPTIONS").Name("login")

	router.HandleFunc("/a/logout", handler.HandleLogout).Methods("POST", "OPTIONS").Name("logout")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.login")
	defer span.End()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_input", "email and password are required")
		return
	}

	user, err := handler.users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			pkg.WriteJSONError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
			return
		}
		log.Errorf("login, authenticate: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	token, err := handler.sessions.Login(ctx, user.ID, time.Now())
	if err != nil {
		log.Errorf("login, create session: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	log.Debugf("user %s logged in", user.ID)
	pkg.WriteJSON(w, http.StatusOK, loginResponse{Token: token})
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()

	token := r.Header.Get(TokenHeader)
	if token == "" {
		pkg.WriteJSONError(w, http.StatusUnauthorized, "unauthorized", "missing token")
		return
	}

	loggedOut, err := handler.sessions.Logout(ctx, token)
	if err != nil {
		log.Errorf("logout: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	if !loggedOut {
		pkg.WriteJSONError(w, http.StatusUnauthorized, "unauthorized", "unknown token")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, map[string]bool{"loggedOut": true})
}
