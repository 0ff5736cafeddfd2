package model

// Prediction is the ranked outcome for one station within a single response.
type Prediction struct {
	Station            Station  `json:"station"`
	User               Location `json:"user"`
	DistanceKm         float64  `json:"distance_km"`
	PredictedEnergyKWh float64  `json:"predicted_energy_kwh"`
	TrafficDurationS   float64  `json:"traffic_duration_s"`
	Degraded           bool     `json:"degraded"`
}
