package cache

import (
	"errors"
	"time"

	"github.com/coocood/freecache"
)

var _ Cache = (*Freecache)(nil)

// minimum freecache accepts, smaller sizes get bumped by the lib anyway
const minSizeBytes = 512 * 1024

type Freecache struct {
	mainCache *freecache.Cache
}

func NewFreecache(sizeMB int) *Freecache {
	size := sizeMB * 1024 * 1024
	if size < minSizeBytes {
		size = minSizeBytes
	}
	return &Freecache{
		mainCache: freecache.NewCache(size),
	}
}

func (c *Freecache) Get(key []byte) ([]byte, error) {
	val, err := c.mainCache.Get(key)
	if errors.Is(err, freecache.ErrNotFound) {
		return nil, ErrNotFound
	}
	return val, err
}

// Set stores the value; ttl <= 0 means no expiry. Sub-second TTLs are rounded up to one second.
func (c *Freecache) Set(key, value []byte, ttl time.Duration) error {
	expireSeconds := 0
	if ttl > 0 {
		expireSeconds = int((ttl + time.Second - 1) / time.Second)
	}
	return c.mainCache.Set(key, value, expireSeconds)
}

func (c *Freecache) Del(key []byte) bool {
	return c.mainCache.Del(key)
}

func (c *Freecache) Clear() {
	c.mainCache.Clear()
}

func (c *Freecache) EntryCount() int64 {
	return c.mainCache.EntryCount()
}
