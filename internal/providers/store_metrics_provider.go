package providers

import (
	"stampcard/internal/storage/interfaces"
	"time"
)

// InstrumentedStore times every SetItem call.
type InstrumentedStore struct {
	inner   interfaces.StoreInterface
	metrics MetricsProviderInterface
}

func NewInstrumentedStore(inner interfaces.StoreInterface, metrics MetricsProviderInterface) interfaces.StoreInterface {
	return &InstrumentedStore{inner: inner, metrics: metrics}
}

func (s *InstrumentedStore) GetItem(key string) (string, bool) {
	return s.inner.GetItem(key)
}

func (s *InstrumentedStore) SetItem(key, value string) error {
	start := time.Now()
	err := s.inner.SetItem(key, value)
	s.metrics.ObservePersistenceDuration(time.Since(start))
	return err
}

func (s *InstrumentedStore) Close() error {
	return s.inner.Close()
}
