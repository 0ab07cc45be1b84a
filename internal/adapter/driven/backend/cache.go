package backend

import (
	"fmt"

	"github.com/gregjones/httpcache"
	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultCacheEntries bounds how many response bodies NewClient keeps.
const defaultCacheEntries = 512

var _ httpcache.Cache = (*boundedCache)(nil)

// boundedCache is an httpcache.Cache that evicts the least recently used
// response once it holds more than its size.
type boundedCache struct {
	entries *lru.Cache[string, []byte]
}

func newBoundedCache(size int) (*boundedCache, error) {
	entries, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("create response cache: %w", err)
	}
	return &boundedCache{entries: entries}, nil
}

func (c *boundedCache) Get(key string) ([]byte, bool) {
	return c.entries.Get(key)
}

func (c *boundedCache) Set(key string, resp []byte) {
	c.entries.Add(key, resp)
}

func (c *boundedCache) Delete(key string) {
	c.entries.Remove(key)
}

// Len reports how many responses are cached.
func (c *boundedCache) Len() int {
	return c.entries.Len()
}
