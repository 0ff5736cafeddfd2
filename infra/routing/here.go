package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/LithiraHettiarachchi/gridSense/core/model"
	"github.com/LithiraHettiarachchi/gridSense/internal/upstream"
)

const hereBaseURL = "https://router.hereapi.com"

var (
	// ErrNoRoute is returned when the provider answers without any route.
	ErrNoRoute = errors.New("no route in response")
	// ErrIncompleteRoute is returned when a route summary lacks a field.
	ErrIncompleteRoute = errors.New("incomplete route summary")
)

// HERE queries the HERE Routing API v8 for a car route summary.
type HERE struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHERE creates a HERE routing provider.
func NewHERE(baseURL, apiKey string, client *http.Client) *HERE {
	if baseURL == "" {
		baseURL = hereBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HERE{baseURL: strings.TrimSuffix(baseURL, "/"), apiKey: apiKey, client: client}
}

// Name implements enrichment.RouteProvider.
func (h *HERE) Name() string { return ProviderHERE }

type hereResponse struct {
	Routes []struct {
		Sections []struct {
			Summary struct {
				Length       *float64 `json:"length"`
				Duration     *float64 `json:"duration"`
				BaseDuration *float64 `json:"baseDuration"`
			} `json:"summary"`
		} `json:"sections"`
	} `json:"routes"`
}

// Route implements enrichment.RouteProvider. The summary of every section of
// the first route is summed; a section missing any summary field fails the
// whole route.
func (h *HERE) Route(ctx context.Context, origin, dest model.Location) (model.Traffic, error) {
	q := url.Values{}
	q.Set("transportMode", "car")
	q.Set("origin", latLon(origin))
	q.Set("destination", latLon(dest))
	q.Set("return", "summary")
	if h.apiKey != "" {
		q.Set("apikey", h.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+"/v8/routes?"+q.Encode(), nil)
	if err != nil {
		return model.Traffic{}, fmt.Errorf("failed to create request: %w", err)
	}
	body, err := upstream.Do(h.client, req)
	if err != nil {
		return model.Traffic{}, err
	}
	var res hereResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return model.Traffic{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(res.Routes) == 0 || len(res.Routes[0].Sections) == 0 {
		return model.Traffic{}, ErrNoRoute
	}
	var tr model.Traffic
	for i, s := range res.Routes[0].Sections {
		sum := s.Summary
		if sum.Length == nil || sum.Duration == nil || sum.BaseDuration == nil {
			return model.Traffic{}, fmt.Errorf("%w: section %d", ErrIncompleteRoute, i)
		}
		tr.LengthM += *sum.Length
		tr.DurationS += *sum.Duration
		tr.BaseDurationS += *sum.BaseDuration
	}
	return tr, nil
}
