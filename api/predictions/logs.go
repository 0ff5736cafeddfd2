// Package predictions exposes the prediction log over HTTP.
package predictions

import (
	"fmt"
	"net/http"
	"time"

	"github.com/LithiraHettiarachchi/gridSense/core/predictionlog"
	"github.com/LithiraHettiarachchi/gridSense/pkg/export"
)

// NewLogHandler returns an HTTP handler exposing prediction logs via GET /api/predictions/logs.
// Requests must include an Authorization header with "Bearer <token>" when token is non-empty.
// Supported filters: start, end (RFC3339), station and outcome. format=csv
// returns one row per ranked station instead of JSON.
func NewLogHandler(store predictionlog.Store, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		q, err := parseQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		records, err := store.Query(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		switch r.URL.Query().Get("format") {
		case "", "json":
			w.Header().Set("Content-Type", "application/json")
			err = export.WriteJSON(w, records)
		case "csv":
			w.Header().Set("Content-Type", "text/csv")
			w.Header().Set("Content-Disposition", `attachment; filename="predictions.csv"`)
			err = export.WriteCSV(w, records)
		default:
			http.Error(w, "unsupported format", http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func parseQuery(r *http.Request) (predictionlog.Query, error) {
	v := r.URL.Query()
	q := predictionlog.Query{
		Station: v.Get("station"),
		Outcome: v.Get("outcome"),
	}
	for _, f := range []struct {
		name string
		dst  *time.Time
	}{{"start", &q.Start}, {"end", &q.End}} {
		s := v.Get(f.name)
		if s == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return q, fmt.Errorf("invalid %s: %w", f.name, err)
		}
		*f.dst = t
	}
	return q, nil
}
