package providers

import "stampcard/internal/structures"

// MetricsCacheProvider counts page cache hits and misses.
type MetricsCacheProvider struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *MetricsCacheProvider) Get(version uint64) ([]byte, bool) {
	page, ok := c.inner.Get(version)
	if ok {
		c.metrics.IncCacheHits()
	} else {
		c.metrics.IncCacheMisses()
	}
	return page, ok
}

func (c *MetricsCacheProvider) Set(version uint64, page []byte) {
	c.inner.Set(version, page)
}

// NewInstrumentedCacheProvider returns the page cache with hit/miss metrics.
// A disabled cache is returned bare so that every render does not count as
// a miss.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if _, disabled := inner.(*noopCache); disabled {
		return inner
	}
	return &MetricsCacheProvider{
		inner:   inner,
		metrics: metrics,
	}
}
