package card

import (
	"fmt"
	"stampcard/internal/models"
	"stampcard/internal/providers"
	"stampcard/internal/storage/interfaces"
	"time"
)

// HistoryStore is the newest-first log of earned stamps and its persisted form.
type HistoryStore struct {
	store     interfaces.StoreInterface
	key       string
	formatter *DateFormatter
	now       func() time.Time
	logger    providers.Logger
	entries   []models.HistoryEntry
}

func NewHistoryStore(store interfaces.StoreInterface, keyPrefix string, formatter *DateFormatter, now func() time.Time, logger providers.Logger) *HistoryStore {
	if now == nil {
		now = time.Now
	}
	return &HistoryStore{
		store:     store,
		key:       HistoryKey(keyPrefix),
		formatter: formatter,
		now:       now,
		logger:    logger,
	}
}

// LoadAll reads the persisted log, replacing the in-memory one. The bool
// reports whether a readable log was present at all.
func (h *HistoryStore) LoadAll() ([]models.HistoryEntry, bool) {
	h.entries = nil
	raw, ok := h.store.GetItem(h.key)
	if !ok {
		return h.Entries(), false
	}
	entries, err := models.DecodeHistory(raw)
	if err != nil {
		h.logger.Warnf(providers.TypeApp, "Ignoring malformed %s value: %s", h.key, err)
		return h.Entries(), false
	}
	h.entries = entries
	return h.Entries(), true
}

// RecordEntry prepends an entry for stampIndex and persists the log. The
// entry is kept in memory even when the write fails.
func (h *HistoryStore) RecordEntry(stampIndex int) (models.HistoryEntry, error) {
	now := h.now()
	ts := now.UnixMilli()
	if len(h.entries) > 0 && ts <= h.entries[0].Timestamp {
		ts = h.entries[0].Timestamp + 1
	}

	entry := models.NewIndexedEntry(ts, h.formatter.Format(now), stampIndex)
	h.entries = append([]models.HistoryEntry{entry}, h.entries...)
	return entry, h.persist()
}

// RemoveEntry drops the entry with the given timestamp. A missing entry is
// not an error and nothing is written.
func (h *HistoryStore) RemoveEntry(timestamp int64) (bool, error) {
	for i, e := range h.entries {
		if e.Timestamp != timestamp {
			continue
		}
		h.entries = append(h.entries[:i:i], h.entries[i+1:]...)
		return true, h.persist()
	}
	return false, nil
}

func (h *HistoryStore) Find(timestamp int64) (models.HistoryEntry, bool) {
	for _, e := range h.entries {
		if e.Timestamp == timestamp {
			return e, true
		}
	}
	return models.HistoryEntry{}, false
}

// Entries returns a copy of the log, newest first.
func (h *HistoryStore) Entries() []models.HistoryEntry {
	out := make([]models.HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *HistoryStore) Len() int { return len(h.entries) }

func (h *HistoryStore) persist() error {
	raw, err := models.EncodeHistory(h.entries)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := h.store.SetItem(h.key, raw); err != nil {
		return fmt.Errorf("persist history: %w", err)
	}
	return nil
}
