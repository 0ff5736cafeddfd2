package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/LithiraHettiarachchi/gridSense/core/model"
	"github.com/LithiraHettiarachchi/gridSense/internal/upstream"
)

const graphHopperBaseURL = "http://localhost:8989"

// GraphHopper queries a GraphHopper routing server. GraphHopper has no live
// traffic model, so the base duration equals the duration.
type GraphHopper struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewGraphHopper creates a GraphHopper routing provider. The API key is only
// sent when set, which allows self-hosted servers.
func NewGraphHopper(baseURL, apiKey string, client *http.Client) *GraphHopper {
	if baseURL == "" {
		baseURL = graphHopperBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &GraphHopper{baseURL: strings.TrimSuffix(baseURL, "/"), apiKey: apiKey, client: client}
}

// Name implements enrichment.RouteProvider.
func (g *GraphHopper) Name() string { return ProviderGraphHopper }

type graphHopperResponse struct {
	Paths []struct {
		Distance *float64 `json:"distance"`
		// Time is in milliseconds.
		Time *float64 `json:"time"`
	} `json:"paths"`
	Message string `json:"message"`
}

// Route implements enrichment.RouteProvider.
func (g *GraphHopper) Route(ctx context.Context, origin, dest model.Location) (model.Traffic, error) {
	q := url.Values{}
	q.Add("point", latLon(origin))
	q.Add("point", latLon(dest))
	q.Set("profile", "car")
	q.Set("calc_points", "false")
	q.Set("instructions", "false")
	if g.apiKey != "" {
		q.Set("key", g.apiKey)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/route?"+q.Encode(), nil)
	if err != nil {
		return model.Traffic{}, fmt.Errorf("failed to create request: %w", err)
	}
	body, err := upstream.Do(g.client, req)
	if err != nil {
		return model.Traffic{}, err
	}
	var res graphHopperResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return model.Traffic{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(res.Paths) == 0 {
		if res.Message != "" {
			return model.Traffic{}, fmt.Errorf("%w: %s", ErrNoRoute, res.Message)
		}
		return model.Traffic{}, ErrNoRoute
	}
	p := res.Paths[0]
	if p.Distance == nil || p.Time == nil {
		return model.Traffic{}, ErrIncompleteRoute
	}
	secs := *p.Time / 1000
	return model.Traffic{LengthM: *p.Distance, DurationS: secs, BaseDurationS: secs}, nil
}
