package cache

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("cache: entry not found")

// Cache is a byte oriented in-process cache with per-entry TTL.
type Cache interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte, ttl time.Duration) error
	Del(key []byte) bool
	Clear()
}
