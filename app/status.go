package app

import (
	"encoding/json"
	"net/http"
	"time"
)

type statusResponse struct {
	Status      string    `json:"status"`
	Environment string    `json:"environment"`
	Database    string    `json:"database"`
	Timestamp   time.Time `json:"timestamp"`
}

// handleStatus reports service health, including a live database ping.
func (a *App) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Status:      "ok",
		Environment: a.cfg.Observability.Environment,
		Database:    "ok",
		Timestamp:   time.Now().UTC(),
	}

	code := http.StatusOK
	if err := a.db.PingContext(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resp)
}
