package models

// SlotState is the projection of a single slot.
type SlotState struct {
	Index  int  `json:"index"`
	Filled bool `json:"filled"`
}

// HistoryView is the JSON projection of a HistoryEntry for API clients.
type HistoryView struct {
	Timestamp  int64  `json:"timestamp"`
	DateStr    string `json:"dateStr"`
	StampIndex *int   `json:"stampIndex,omitempty"`
	Kind       string `json:"kind"`
}

// CardSnapshot is a point-in-time copy of the card state.
type CardSnapshot struct {
	Total             int           `json:"total"`
	Count             int           `json:"count"`
	Complete          bool          `json:"complete"`
	CompletionVisible bool          `json:"completionVisible"`
	Slots             []SlotState   `json:"slots"`
	History           []HistoryView `json:"history"`
}

func NewHistoryView(e HistoryEntry) HistoryView {
	v := HistoryView{Timestamp: e.Timestamp, DateStr: e.DateStr, Kind: e.Kind.String()}
	if idx, ok := e.StampIndex(); ok {
		v.StampIndex = &idx
	}
	return v
}
