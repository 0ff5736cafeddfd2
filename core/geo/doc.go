// Package geo selects the stations that lie within a radius of a query point.
// Distances are geodesic on the WGS84 ellipsoid.
package geo
