package model

// Weather holds short-range weather aggregates for a location.
type Weather struct {
	TMin float64 `json:"tmin"`
	TMax float64 `json:"tmax"`
	TAvg float64 `json:"tavg"`
	// ConditionCode is the provider's weather condition code of the first
	// day in the window carrying one.
	ConditionCode float64 `json:"condition_code"`
}

// Traffic summarises a driving route between two points.
type Traffic struct {
	LengthM       float64 `json:"length_m"`
	DurationS     float64 `json:"duration_s"`
	BaseDurationS float64 `json:"base_duration_s"`
}

// Enrichment is the per request/station augmentation fed to the predictor.
// Degraded is set when any upstream call failed or returned incomplete data
// and zero values were used.
type Enrichment struct {
	Weather  Weather `json:"weather"`
	Traffic  Traffic `json:"traffic"`
	Degraded bool    `json:"degraded"`
}
