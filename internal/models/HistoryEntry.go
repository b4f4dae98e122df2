package models

import (
	"sort"

	json "github.com/goccy/go-json"
)

// EntryKind distinguishes history entries written before per-slot tracking
// existed from the current format.
type EntryKind uint8

const (
	// LegacyEntry carries no slot index and cannot be unfilled on the board.
	LegacyEntry EntryKind = iota
	// IndexedEntry records the slot it filled.
	IndexedEntry
)

func (k EntryKind) String() string {
	if k == IndexedEntry {
		return "indexed"
	}
	return "legacy"
}

// HistoryEntry is one earned stamp. Timestamp (unix millis) is the identity key.
type HistoryEntry struct {
	Kind      EntryKind
	Timestamp int64
	DateStr   string
	index     int
}

func NewIndexedEntry(timestamp int64, dateStr string, stampIndex int) HistoryEntry {
	return HistoryEntry{Kind: IndexedEntry, Timestamp: timestamp, DateStr: dateStr, index: stampIndex}
}

func NewLegacyEntry(timestamp int64, dateStr string) HistoryEntry {
	return HistoryEntry{Kind: LegacyEntry, Timestamp: timestamp, DateStr: dateStr}
}

// StampIndex returns the slot index and whether the entry carries one.
func (e HistoryEntry) StampIndex() (int, bool) {
	if e.Kind != IndexedEntry {
		return 0, false
	}
	return e.index, true
}

// historyRecord is the persisted shape: {timestamp, dateStr, stampIndex?}.
type historyRecord struct {
	Timestamp  int64  `json:"timestamp"`
	DateStr    string `json:"dateStr"`
	StampIndex *int   `json:"stampIndex,omitempty"`
}

func (e HistoryEntry) MarshalJSON() ([]byte, error) {
	rec := historyRecord{Timestamp: e.Timestamp, DateStr: e.DateStr}
	if idx, ok := e.StampIndex(); ok {
		rec.StampIndex = &idx
	}
	return json.Marshal(rec)
}

func (e *HistoryEntry) UnmarshalJSON(data []byte) error {
	var rec historyRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	if rec.StampIndex != nil {
		*e = NewIndexedEntry(rec.Timestamp, rec.DateStr, *rec.StampIndex)
		return nil
	}
	*e = NewLegacyEntry(rec.Timestamp, rec.DateStr)
	return nil
}

// EncodeHistory serializes a log in the order given.
func EncodeHistory(entries []HistoryEntry) (string, error) {
	if entries == nil {
		entries = []HistoryEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeHistory parses a persisted log and returns it newest-first. Null
// elements are dropped.
func DecodeHistory(raw string) ([]HistoryEntry, error) {
	var records []*HistoryEntry
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, err
	}
	entries := make([]HistoryEntry, 0, len(records))
	for _, rec := range records {
		if rec != nil {
			entries = append(entries, *rec)
		}
	}
	SortNewestFirst(entries)
	return entries, nil
}

// SortNewestFirst orders entries by descending timestamp, keeping the
// relative order of equal timestamps.
func SortNewestFirst(entries []HistoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
}
