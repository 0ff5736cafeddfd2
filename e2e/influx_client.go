// Package e2e exercises the assembled service against real InfluxDB and
// Mosquitto containers.
package e2e

import (
	"context"
	"fmt"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
)

// InfluxClient is a small query helper around the official InfluxDB v2
// client. It hides token/org/bucket plumbing.
type InfluxClient struct {
	bucket string
	client influxdb2.Client
	query  api.QueryAPI
}

// NewInfluxClient creates a new client for the given parameters. It assumes
// the server is already running and reachable.
func NewInfluxClient(url, org, bucket, token string) *InfluxClient {
	c := influxdb2.NewClient(url, token)
	return &InfluxClient{bucket: bucket, client: c, query: c.QueryAPI(org)}
}

// CountRecords returns the number of records of measurement written in the
// last minute, optionally filtered by one tag.
func (c *InfluxClient) CountRecords(ctx context.Context, measurement, tag, value string) (int, error) {
	flux := fmt.Sprintf(`from(bucket:%q) |> range(start:-1m) |> filter(fn: (r) => r._measurement == %q)`,
		c.bucket, measurement)
	if tag != "" {
		flux += fmt.Sprintf(` |> filter(fn: (r) => r[%q] == %q)`, tag, value)
	}
	res, err := c.query.Query(ctx, flux)
	if err != nil {
		return 0, err
	}
	defer res.Close()
	n := 0
	for res.Next() {
		n++
	}
	return n, res.Err()
}

// Close releases the underlying HTTP resources.
func (c *InfluxClient) Close() { c.client.Close() }
