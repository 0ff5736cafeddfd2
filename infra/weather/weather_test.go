package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LithiraHettiarachchi/gridSense/core/enrichment"
	"github.com/LithiraHettiarachchi/gridSense/core/model"
)

var (
	loc   = model.Location{Lat: 35.7796, Lon: -78.8382}
	end   = time.Date(2024, time.May, 10, 9, 0, 0, 0, time.UTC)
	start = end.AddDate(0, 0, -4)
)

func TestMeteostat_Daily(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/point/daily", r.URL.Path)
		assert.Equal(t, "35.7796", r.URL.Query().Get("lat"))
		assert.Equal(t, "-78.8382", r.URL.Query().Get("lon"))
		assert.Equal(t, "2024-05-06", r.URL.Query().Get("start"))
		assert.Equal(t, "2024-05-10", r.URL.Query().Get("end"))
		assert.Equal(t, "secret", r.Header.Get("x-rapidapi-key"))
		_, _ = w.Write([]byte(`{"meta":{},"data":[
			{"date":"2024-05-06","tavg":18.1,"tmin":12.0,"tmax":25.3},
			{"date":"2024-05-07","tavg":null,"tmin":10.5,"tmax":null,"coco":3}
		]}`))
	}))
	defer srv.Close()

	m := NewMeteostat(srv.URL, "secret", srv.Client())
	days, err := m.Daily(context.Background(), loc, start, end)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Nil(t, days[0].ConditionCode)
	assert.Nil(t, days[1].TAvg)
	w, missing := enrichment.Aggregate(days)
	assert.Empty(t, missing)
	assert.Equal(t, model.Weather{TMin: 10.5, TMax: 25.3, TAvg: 18.1, ConditionCode: 3}, w)
}

func TestMeteostat_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lat") == "1" {
			_, _ = w.Write([]byte(`{"data":[{"date":"yesterday"}]}`))
			return
		}
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	m := NewMeteostat(srv.URL, "", srv.Client())
	_, err := m.Daily(context.Background(), loc, start, end)
	assert.ErrorContains(t, err, "429")
	_, err = m.Daily(context.Background(), model.Location{Lat: 1, Lon: 1}, start, end)
	assert.Error(t, err)
}

func TestOpenMeteo_Daily(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		assert.Equal(t, "2024-05-06", r.URL.Query().Get("start_date"))
		_, _ = w.Write([]byte(`{"daily":{
			"time":["2024-05-06","2024-05-07","2024-05-08"],
			"temperature_2m_max":[20.0,22.5,null],
			"temperature_2m_min":[8.0,6.5,7.0],
			"temperature_2m_mean":[14.0,15.0,16.0],
			"weather_code":[null,61]
		}}`))
	}))
	defer srv.Close()

	o := NewOpenMeteo(srv.URL, srv.Client())
	days, err := o.Daily(context.Background(), loc, start, end)
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Nil(t, days[2].ConditionCode)
	w, missing := enrichment.Aggregate(days)
	assert.Empty(t, missing)
	// WMO 61 (slight rain) is Meteostat 7 (light rain).
	assert.Equal(t, model.Weather{TMin: 6.5, TMax: 22.5, TAvg: 15, ConditionCode: 7}, w)
}

func TestCocoFromWMO(t *testing.T) {
	code := func(v float64) *float64 { return &v }
	cases := []struct {
		in   *float64
		want *float64
	}{
		{nil, nil},
		{code(0), code(1)},
		{code(3), code(4)},
		{code(45), code(5)},
		{code(65), code(9)},
		{code(75), code(16)},
		{code(82), code(18)},
		{code(99), code(26)},
		{code(4), nil},
		{code(100), nil},
		{code(61.5), nil},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, cocoFromWMO(c.in))
	}
	for wmo, coco := range wmoToCoco {
		assert.True(t, coco >= 1 && coco <= 27, "wmo %d maps outside the coco range", wmo)
	}
}

func TestOpenMeteo_UnknownCodeIsMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"daily":{"time":["2024-05-06"],
			"temperature_2m_max":[20.0],"temperature_2m_min":[8.0],
			"temperature_2m_mean":[14.0],"weather_code":[42]}}`))
	}))
	defer srv.Close()

	days, err := NewOpenMeteo(srv.URL, srv.Client()).Daily(context.Background(), loc, start, end)
	require.NoError(t, err)
	_, missing := enrichment.Aggregate(days)
	assert.Equal(t, []string{enrichment.FieldCoco}, missing)
}

func TestOpenMeteo_Malformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()
	_, err := NewOpenMeteo(srv.URL, srv.Client()).Daily(context.Background(), loc, start, end)
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	cfg := Config{}
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())
	p, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, ProviderMeteostat, p.Name())
	assert.Equal(t, 96*time.Hour, cfg.Window())

	p, err = New(Config{Provider: "open-meteo", TimeoutSeconds: 1})
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenMeteo, p.Name())

	bad := Config{Provider: "darksky"}
	assert.Error(t, bad.Validate())
	_, err = New(bad)
	assert.Error(t, err)
}
