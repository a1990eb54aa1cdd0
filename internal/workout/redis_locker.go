package workout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	sessionLockKeyPrefix     = "liftlog:session-lock:"
	defaultLockRetryInterval = 25 * time.Millisecond
)

// deletes the lock only if it is still held with our token
const releaseLockScript = `if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end`

var ErrLockNotAcquired = errors.New("session lock not acquired")

// RedisLocker is a SessionLocker shared by all service instances using the same redis.
// A lock expires after ttl even if its holder dies.
type RedisLocker struct {
	rdb           *redis.Client
	ttl           time.Duration
	retryInterval time.Duration
	newToken      func() string
}

func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		rdb:           rdb,
		ttl:           ttl,
		retryInterval: defaultLockRetryInterval,
		newToken:      uuid.NewString,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, sessionID uuid.UUID) (func(), error) {
	key := sessionLockKeyPrefix + sessionID.String()
	token := l.newToken()

	// give up once the lock would have expired anyway
	acquireCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	for {
		acquired, err := l.rdb.SetNX(acquireCtx, key, token, l.ttl).Result()
		if err != nil {
			if acquireCtx.Err() != nil {
				return nil, fmt.Errorf("%w: %s", ErrLockNotAcquired, acquireCtx.Err())
			}
			return nil, fmt.Errorf("acquire session lock: %w", err)
		}
		if acquired {
			break
		}

		select {
		case <-acquireCtx.Done():
			return nil, fmt.Errorf("%w: %s", ErrLockNotAcquired, acquireCtx.Err())
		case <-time.After(l.retryInterval):
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := l.rdb.Eval(releaseCtx, releaseLockScript, []string{key}, token).Err(); err != nil {
				log.Errorf("release session lock %s: %s", sessionID, err)
			}
		})
	}, nil
}
