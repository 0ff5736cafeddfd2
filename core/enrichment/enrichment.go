// Package enrichment augments a query/station pair with weather and traffic
// data. Upstream failures never propagate: they are logged, counted and
// replaced by zero values, and the result is flagged as degraded. Values
// absent from an otherwise successful response are zero-filled and flagged
// the same way.
package enrichment

import (
	"context"
	"strings"
	"time"

	"github.com/LithiraHettiarachchi/gridSense/core/logger"
	"github.com/LithiraHettiarachchi/gridSense/core/metrics"
	"github.com/LithiraHettiarachchi/gridSense/core/model"
)

// DefaultWindow is the trailing weather window ending now.
const DefaultWindow = 4 * 24 * time.Hour

// DailyObservation is one day of provider weather data. Nil fields are
// missing in the upstream response.
type DailyObservation struct {
	Date          time.Time
	TMin          *float64
	TMax          *float64
	TAvg          *float64
	ConditionCode *float64
}

// WeatherProvider fetches daily observations for a location and date range.
type WeatherProvider interface {
	Name() string
	Daily(ctx context.Context, loc model.Location, start, end time.Time) ([]DailyObservation, error)
}

// RouteProvider fetches a driving route summary between two points.
type RouteProvider interface {
	Name() string
	Route(ctx context.Context, origin, dest model.Location) (model.Traffic, error)
}

// Client wraps the providers and absorbs their failures.
type Client struct {
	weather WeatherProvider
	routes  RouteProvider
	window  time.Duration
	now     func() time.Time
	log     logger.Logger
	rec     metrics.UpstreamFailureRecorder
}

// Option customises a Client.
type Option func(*Client)

// WithWindow overrides the trailing weather window.
func WithWindow(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.window = d
		}
	}
}

// WithClock overrides the time source used for the weather window.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithFailureRecorder records absorbed upstream failures.
func WithFailureRecorder(rec metrics.UpstreamFailureRecorder) Option {
	return func(c *Client) {
		if rec != nil {
			c.rec = rec
		}
	}
}

// NewClient creates a Client. A nil logger disables logging.
func NewClient(w WeatherProvider, r RouteProvider, log logger.Logger, opts ...Option) *Client {
	c := &Client{
		weather: w,
		routes:  r,
		window:  DefaultWindow,
		now:     time.Now,
		log:     log,
		rec:     metrics.NopSink{},
	}
	if c.log == nil {
		c.log = logger.NopLogger{}
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Weather returns the aggregated weather at loc. ok is false when the fetch
// failed or any aggregate had no value in the window and was zero-filled.
func (c *Client) Weather(ctx context.Context, loc model.Location) (w model.Weather, ok bool) {
	end := c.now()
	start := end.Add(-c.window)
	days, err := c.weather.Daily(ctx, loc, start, end)
	if err != nil {
		c.absorb("weather", c.weather.Name(), err)
		return model.Weather{}, false
	}
	w, missing := Aggregate(days)
	if len(missing) > 0 {
		c.log.Warnf("weather from %s missing %s over %d day(s), zero-filled",
			c.weather.Name(), strings.Join(missing, ","), len(days))
		return w, false
	}
	return w, true
}

// Traffic returns the route summary from origin to dest. ok is false when the
// fetch failed and zero values were returned.
func (c *Client) Traffic(ctx context.Context, origin, dest model.Location) (tr model.Traffic, ok bool) {
	tr, err := c.routes.Route(ctx, origin, dest)
	if err != nil {
		c.absorb("traffic", c.routes.Name(), err)
		return model.Traffic{}, false
	}
	return tr, true
}

// Enrich fetches weather at the station and traffic from the query to the station.
func (c *Client) Enrich(ctx context.Context, q model.Query, st model.Station) model.Enrichment {
	tr, trOK := c.Traffic(ctx, q.Location(), st.Location)
	w, wOK := c.Weather(ctx, st.Location)
	return model.Enrichment{Weather: w, Traffic: tr, Degraded: !trOK || !wOK}
}

func (c *Client) absorb(source, provider string, err error) {
	c.log.Errorf("error fetching %s data from %s: %v", source, provider, err)
	if rerr := c.rec.RecordUpstreamFailure(metrics.UpstreamFailure{
		Source:   source,
		Provider: provider,
		Err:      err.Error(),
		Time:     time.Now(),
	}); rerr != nil {
		c.log.Warnf("record upstream failure: %v", rerr)
	}
}
