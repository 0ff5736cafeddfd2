package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/LithiraHettiarachchi/gridSense/core/enrichment"
	"github.com/LithiraHettiarachchi/gridSense/core/model"
	"github.com/LithiraHettiarachchi/gridSense/internal/upstream"
)

const openMeteoBaseURL = "https://api.open-meteo.com"

// OpenMeteo queries the Open-Meteo forecast API, which also serves recent past days.
type OpenMeteo struct {
	baseURL string
	client  *http.Client
}

// NewOpenMeteo creates an Open-Meteo provider.
func NewOpenMeteo(baseURL string, client *http.Client) *OpenMeteo {
	if baseURL == "" {
		baseURL = openMeteoBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &OpenMeteo{baseURL: strings.TrimSuffix(baseURL, "/"), client: client}
}

// Name implements enrichment.WeatherProvider.
func (o *OpenMeteo) Name() string { return ProviderOpenMeteo }

type openMeteoResponse struct {
	Daily struct {
		Time []string   `json:"time"`
		TMax []*float64 `json:"temperature_2m_max"`
		TMin []*float64 `json:"temperature_2m_min"`
		TAvg []*float64 `json:"temperature_2m_mean"`
		Code []*float64 `json:"weather_code"`
	} `json:"daily"`
}

// Daily implements enrichment.WeatherProvider. WMO weather codes are
// translated to Meteostat condition codes.
func (o *OpenMeteo) Daily(ctx context.Context, loc model.Location, start, end time.Time) ([]enrichment.DailyObservation, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(loc.Lon, 'f', -1, 64))
	q.Set("start_date", start.Format(dateLayout))
	q.Set("end_date", end.Format(dateLayout))
	q.Set("daily", "temperature_2m_max,temperature_2m_min,temperature_2m_mean,weather_code")
	q.Set("timezone", "UTC")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/v1/forecast?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	body, err := upstream.Do(o.client, req)
	if err != nil {
		return nil, err
	}
	var res openMeteoResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	d := res.Daily
	out := make([]enrichment.DailyObservation, 0, len(d.Time))
	for i, ts := range d.Time {
		date, err := time.Parse(dateLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", ts, err)
		}
		out = append(out, enrichment.DailyObservation{
			Date:          date,
			TMin:          at(d.TMin, i),
			TMax:          at(d.TMax, i),
			TAvg:          at(d.TAvg, i),
			ConditionCode: cocoFromWMO(at(d.Code, i)),
		})
	}
	return out, nil
}

// at returns s[i] or nil when the series is shorter than the time axis.
func at(s []*float64, i int) *float64 {
	if i < len(s) {
		return s[i]
	}
	return nil
}
