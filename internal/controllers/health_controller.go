package controllers

import (
	"fmt"
	json "github.com/goccy/go-json"
	"net/http"
	"stampcard/internal/services"
	"time"
)

type HealthController struct {
	service   services.StampCardServiceInterface
	startTime time.Time
}

type cardHealth struct {
	Count          int    `json:"count"`
	Total          int    `json:"total"`
	Complete       bool   `json:"complete"`
	HistoryEntries int    `json:"history_entries"`
	RestoredFrom   string `json:"restored_from"`
	Version        uint64 `json:"version"`
}

type healthResponse struct {
	Status        string     `json:"status"`
	Uptime        string     `json:"uptime"`
	UptimeSeconds float64    `json:"uptime_seconds"`
	Card          cardHealth `json:"card"`
}

// Health reports liveness together with a summary of the card and how it
// was restored at startup.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	snap := hc.service.Snapshot()
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Card: cardHealth{
			Count:          snap.Count,
			Total:          snap.Total,
			Complete:       snap.Complete,
			HistoryEntries: len(snap.History),
			RestoredFrom:   string(hc.service.Report().Source),
			Version:        hc.service.Version(),
		},
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%dh%dm%ds", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
}

func NewHealthController(service services.StampCardServiceInterface) *HealthController {
	return &HealthController{
		service:   service,
		startTime: time.Now(),
	}
}
