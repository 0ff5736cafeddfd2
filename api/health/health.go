// Package health exposes a liveness endpoint describing the loaded dataset.
package health

import (
	"encoding/json"
	"net/http"
	"time"
)

// Info describes the state loaded at startup.
type Info struct {
	Stations      int    `json:"stations"`
	ModelKind     string `json:"model_kind"`
	ModelFeatures int    `json:"model_features"`
	Weather       string `json:"weather_provider"`
	Routing       string `json:"routing_provider"`
}

type status struct {
	Status  string  `json:"status"`
	Uptime  float64 `json:"uptime_s"`
	Details Info    `json:"details"`
}

// NewHandler returns the GET /healthz handler.
func NewHandler(info Info) http.Handler {
	started := time.Now()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(status{
			Status:  "ok",
			Uptime:  time.Since(started).Seconds(),
			Details: info,
		})
	})
}
