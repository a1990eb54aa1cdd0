package users

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// EmailNormalizer maps an email to the form it is stored and looked up in.
type EmailNormalizer func(email string) string

func LowercaseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
