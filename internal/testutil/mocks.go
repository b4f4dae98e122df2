package testutil

import (
	"errors"
	"stampcard/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

var ErrStoreWrite = errors.New("mock store write failure")

// MockStore implements interfaces.StoreInterface in memory. FailWrites makes
// every SetItem fail without changing the data.
type MockStore struct {
	mu         sync.Mutex
	Data       map[string]string
	Writes     []string
	FailWrites bool
}

func NewMockStore(items map[string]string) *MockStore {
	data := make(map[string]string, len(items))
	for k, v := range items {
		data[k] = v
	}
	return &MockStore{Data: data}
}

func (m *MockStore) GetItem(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Data[key]
	return v, ok
}

func (m *MockStore) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return ErrStoreWrite
	}
	m.Data[key] = value
	m.Writes = append(m.Writes, key)
	return nil
}

func (m *MockStore) Close() error { return nil }

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu              sync.Mutex
	Filled          int
	Undone          int
	Completions     int
	CacheHits       int
	CacheMisses     int
	PersistCalls    int
	LastCount       int
	LastHistoryLen  int
	RequestStatuses []int
}

func (m *MockMetrics) IncRequestsTotal(_ string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestStatuses = append(m.RequestStatuses, status)
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistCalls++
}
func (m *MockMetrics) IncStampsFilled() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Filled++
}
func (m *MockMetrics) IncStampsUndone() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Undone++
}
func (m *MockMetrics) IncCompletions() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Completions++
}
func (m *MockMetrics) SetCardState(count, historyEntries int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastCount = count
	m.LastHistoryLen = historyEntries
}

func (m *MockMetrics) CompletionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Completions
}

// ManualScheduler implements interfaces.SchedulerInterface; callbacks run
// only when the test calls Fire.
type ManualScheduler struct {
	mu      sync.Mutex
	Pending []Scheduled
	Stopped bool
}

type Scheduled struct {
	Delay time.Duration
	Fn    func()
}

func (s *ManualScheduler) Schedule(delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Stopped {
		return
	}
	s.Pending = append(s.Pending, Scheduled{Delay: delay, Fn: fn})
}

func (s *ManualScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Stopped = true
	s.Pending = nil
}

// Fire runs and clears every pending callback, returning how many ran.
func (s *ManualScheduler) Fire() int {
	s.mu.Lock()
	pending := s.Pending
	s.Pending = nil
	s.mu.Unlock()
	for _, p := range pending {
		p.Fn()
	}
	return len(pending)
}

func (s *ManualScheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Pending)
}

// StepClock returns a clock starting at start that advances by step on
// every call.
func StepClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(step)
		return t
	}
}
