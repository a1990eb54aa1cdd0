package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=users

type usersRepo interface {
	Add(ctx context.Context, user User) error
	Get(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type Service struct {
	repo           usersRepo
	normalizeEmail EmailNormalizer
	hashCost       int
	now            func() time.Time
}

func NewService(repo usersRepo, normalizeEmail EmailNormalizer) *Service {
	if normalizeEmail == nil {
		normalizeEmail = LowercaseEmail
	}
	return &Service{
		repo:           repo,
		normalizeEmail: normalizeEmail,
		hashCost:       pkg.PasswordHashCost,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (s *Service) Register(ctx context.Context, email, password string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.register")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	hash, err := pkg.HashPasswordWithCost(password, s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.New(),
		Email:        s.normalizeEmail(email),
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.repo.Add(ctx, user); err != nil {
		return nil, err
	}

	log.Debugf("user %s registered", user.ID)
	return &user, nil
}

// Authenticate returns ErrInvalidCredentials both for unknown emails and wrong passwords.
func (s *Service) Authenticate(ctx context.Context, email, password string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.authenticate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user, err := s.repo.GetByEmail(ctx, s.normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !pkg.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.Get(ctx, id)
}
