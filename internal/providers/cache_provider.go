package providers

import (
	"stampcard/internal/structures"

	"github.com/coocood/freecache"
	"go.uber.org/atomic"
)

// CacheProviderInterface caches rendered pages by card state version. A
// version is never reused, so a cached page cannot outlive its state.
type CacheProviderInterface interface {
	Get(version uint64) ([]byte, bool)
	Set(version uint64, page []byte)
}

type CacheProvider struct {
	cache  *freecache.Cache
	ttl    int
	latest atomic.Uint64
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Page cache disabled")
		return &noopCache{}
	}

	sizeBytes := conf.Cache.Size * 1024 * 1024
	ttl := max(conf.Cache.TTL, 0)

	logger.Infof(TypeApp, "Page cache initialized: %dMB, TTL=%ds", conf.Cache.Size, ttl)

	return &CacheProvider{
		cache: freecache.NewCache(sizeBytes),
		ttl:   ttl,
	}
}

func (c *CacheProvider) Get(version uint64) ([]byte, bool) {
	page, err := c.cache.GetInt(int64(version))
	if err != nil {
		return nil, false
	}
	return page, true
}

// Set stores the page for version and evicts the page of the previously
// stored version, which no request will ask for again.
func (c *CacheProvider) Set(version uint64, page []byte) {
	_ = c.cache.SetInt(int64(version), page, c.ttl)
	if prev := c.latest.Swap(version); prev != version && prev != 0 {
		c.cache.DelInt(int64(prev))
	}
}

func (c *CacheProvider) EntryCount() int64 {
	return c.cache.EntryCount()
}

type noopCache struct{}

func (n *noopCache) Get(_ uint64) ([]byte, bool) { return nil, false }
func (n *noopCache) Set(_ uint64, _ []byte)      {}
