package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

// IsLogged resolves a token to the id of the user it was issued for.
// Unknown and expired tokens are reported as not logged, without an error.
func (lc *LoginChecker) IsLogged(ctx context.Context, token string) (uuid.UUID, bool, error) {
	sessionKey := sessionKeyPrefix + token
	value, err := lc.redisClient.Get(ctx, sessionKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, err
	}

	userID, createdAt, err := parseSessionValue(value)
	if err != nil {
		return uuid.Nil, false, err
	}

	if time.Since(createdAt) > lc.ttl {
		return uuid.Nil, false, nil
	}

	return userID, true, nil
}
