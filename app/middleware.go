package app

import (
	"encoding/json"
	"net/http"

	coremon "github.com/LithiraHettiarachchi/gridSense/core/monitoring"
	"github.com/LithiraHettiarachchi/gridSense/infra/logger"
)

// recoverer turns a handler panic into a 500 response and reports it.
func recoverer(log logger.Logger, mon coremon.Monitor, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Errorf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				mon.CapturePanic(rec, map[string]string{"path": r.URL.Path})
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{"detail": "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
