// Package predict exposes the ranking service as POST /predict.
package predict

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/LithiraHettiarachchi/gridSense/core/logger"
	"github.com/LithiraHettiarachchi/gridSense/core/model"
	"github.com/LithiraHettiarachchi/gridSense/core/monitoring"
	"github.com/LithiraHettiarachchi/gridSense/core/ranking"
)

const maxBodyBytes = 1 << 16

// Ranker is the subset of ranking.Service used by the handler.
type Ranker interface {
	Rank(ctx context.Context, q model.Query) (ranking.Result, error)
}

// Request is the POST /predict body. Both fields are required.
type Request struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// StationResult is one ranked station in the response.
type StationResult struct {
	StationName        string     `json:"station_name"`
	StationLocation    [2]float64 `json:"station_location"`
	UserLocation       [2]float64 `json:"user_location"`
	DistanceKm         float64    `json:"distance_km"`
	PredictedEnergyKWh float64    `json:"predicted_energy_kwh"`
	TrafficDurationS   float64    `json:"traffic_duration_s"`
	Degraded           bool       `json:"degraded"`
}

// Response is the 200 body.
type Response struct {
	TopStations []StationResult `json:"top_stations"`
}

// ErrorResponse is the body of every non-200 answer.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// NewHandler returns the POST /predict handler. Internal errors are reported
// to mon; a nil mon disables reporting.
func NewHandler(r Ranker, log logger.Logger, mon monitoring.Monitor) http.Handler {
	if log == nil {
		log = logger.NopLogger{}
	}
	if mon == nil {
		mon = monitoring.NopMonitor{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Detail: "method not allowed"})
			return
		}
		q, err := decode(req.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
			return
		}

		res, err := r.Rank(req.Context(), q)
		var coordErr *model.CoordinateError
		switch {
		case err == nil:
		case errors.As(err, &coordErr):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
			return
		case ranking.IsNotFound(err):
			writeJSON(w, http.StatusNotFound, ErrorResponse{Detail: err.Error()})
			return
		default:
			log.Errorf("predict %s (%.6f,%.6f): %v", res.RequestID, q.Lat, q.Lon, err)
			mon.CaptureException(err, map[string]string{"request_id": res.RequestID})
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Detail: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, NewResponse(res))
	})
}

// NewResponse converts a ranking result into the response body.
func NewResponse(res ranking.Result) Response {
	out := Response{TopStations: make([]StationResult, 0, len(res.Predictions))}
	for _, p := range res.Predictions {
		out.TopStations = append(out.TopStations, StationResult{
			StationName:        p.Station.Name,
			StationLocation:    p.Station.Location.Pair(),
			UserLocation:       p.User.Pair(),
			DistanceKm:         p.DistanceKm,
			PredictedEnergyKWh: p.PredictedEnergyKWh,
			TrafficDurationS:   p.TrafficDurationS,
			Degraded:           p.Degraded,
		})
	}
	return out
}

func decode(body io.Reader) (model.Query, error) {
	var in Request
	dec := json.NewDecoder(io.LimitReader(body, maxBodyBytes))
	if err := dec.Decode(&in); err != nil {
		return model.Query{}, errors.New("invalid JSON body: " + err.Error())
	}
	if in.Latitude == nil || in.Longitude == nil {
		return model.Query{}, errors.New("latitude and longitude are required")
	}
	q := model.Query{Lat: *in.Latitude, Lon: *in.Longitude}
	if err := q.Validate(); err != nil {
		return model.Query{}, err
	}
	return q, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
