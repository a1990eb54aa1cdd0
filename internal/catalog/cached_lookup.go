package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/2beens/liftlog/internal/cache"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source=$GOFILE -destination=cached_lookup_mocks_test.go -package=catalog

type exerciseGetter interface {
	GetExercise(ctx context.Context, id uuid.UUID) (*Exercise, error)
}

// CachedLookup resolves exercises by id, keeping hits in an in-process cache.
// Concurrent misses for the same id share one repo call. Not-found results are not cached.
type CachedLookup struct {
	repo    exerciseGetter
	cache   cache.Cache
	ttl     time.Duration
	group   singleflight.Group
	metrics *metrics.Manager
}

func NewCachedLookup(
	repo exerciseGetter,
	cache cache.Cache,
	ttl time.Duration,
	metrics *metrics.Manager,
) *CachedLookup {
	return &CachedLookup{
		repo:    repo,
		cache:   cache,
		ttl:     ttl,
		metrics: metrics,
	}
}

func (l *CachedLookup) GetExercise(ctx context.Context, id uuid.UUID) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "catalog.lookup.exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id.String()))

	key := cacheKey(id)
	if cached, err := l.cache.Get(key); err == nil {
		var ex Exercise
		if err := json.Unmarshal(cached, &ex); err == nil {
			l.countLookup("hit")
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return &ex, nil
		}
		log.Warnf("catalog cache: drop corrupt entry for exercise %s", id)
		l.cache.Del(key)
	} else if !errors.Is(err, cache.ErrNotFound) {
		log.Errorf("catalog cache get %s: %s", id, err)
	}

	l.countLookup("miss")
	span.SetAttributes(attribute.Bool("cache.hit", false))

	res, err, _ := l.group.Do(id.String(), func() (any, error) {
		ex, err := l.repo.GetExercise(ctx, id)
		if err != nil {
			return nil, err
		}

		if exJson, err := json.Marshal(ex); err != nil {
			log.Errorf("catalog cache: marshal exercise %s: %s", id, err)
		} else if err := l.cache.Set(key, exJson, l.ttl); err != nil {
			log.Errorf("catalog cache: set exercise %s: %s", id, err)
		}

		return ex, nil
	})
	if err != nil {
		return nil, err
	}

	ex := *res.(*Exercise)
	return &ex, nil
}

// Invalidate drops the cached exercise, called after it was deleted.
func (l *CachedLookup) Invalidate(id uuid.UUID) {
	l.cache.Del(cacheKey(id))
}

func (l *CachedLookup) countLookup(result string) {
	if l.metrics != nil {
		l.metrics.CounterCatalogCacheLookups.WithLabelValues(result).Inc()
	}
}

func cacheKey(id uuid.UUID) []byte {
	return []byte("exercise:" + id.String())
}
