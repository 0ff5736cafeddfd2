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

const meteostatBaseURL = "https://meteostat.p.rapidapi.com"

// Meteostat queries the Meteostat JSON API for daily point data.
type Meteostat struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewMeteostat creates a Meteostat provider. An empty baseURL selects the
// public RapidAPI endpoint.
func NewMeteostat(baseURL, apiKey string, client *http.Client) *Meteostat {
	if baseURL == "" {
		baseURL = meteostatBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Meteostat{baseURL: strings.TrimSuffix(baseURL, "/"), apiKey: apiKey, client: client}
}

// Name implements enrichment.WeatherProvider.
func (m *Meteostat) Name() string { return ProviderMeteostat }

type meteostatResponse struct {
	Data []struct {
		Date string   `json:"date"`
		TAvg *float64 `json:"tavg"`
		TMin *float64 `json:"tmin"`
		TMax *float64 `json:"tmax"`
		Coco *float64 `json:"coco"`
	} `json:"data"`
}

// Daily implements enrichment.WeatherProvider.
func (m *Meteostat) Daily(ctx context.Context, loc model.Location, start, end time.Time) ([]enrichment.DailyObservation, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(loc.Lon, 'f', -1, 64))
	q.Set("start", start.Format(dateLayout))
	q.Set("end", end.Format(dateLayout))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/point/daily?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if m.apiKey != "" {
		req.Header.Set("x-rapidapi-key", m.apiKey)
		req.Header.Set("x-rapidapi-host", "meteostat.p.rapidapi.com")
	}
	body, err := upstream.Do(m.client, req)
	if err != nil {
		return nil, err
	}
	var res meteostatResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	out := make([]enrichment.DailyObservation, 0, len(res.Data))
	for _, d := range res.Data {
		date, err := time.Parse(dateLayout, d.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", d.Date, err)
		}
		out = append(out, enrichment.DailyObservation{
			Date:          date,
			TMin:          d.TMin,
			TMax:          d.TMax,
			TAvg:          d.TAvg,
			ConditionCode: d.Coco,
		})
	}
	return out, nil
}
