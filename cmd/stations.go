package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/LithiraHettiarachchi/gridSense/core/geo"
	"github.com/LithiraHettiarachchi/gridSense/core/model"
	"github.com/LithiraHettiarachchi/gridSense/infra/stations"
)

var (
	stationsLat    float64
	stationsLon    float64
	stationsRadius float64
)

var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "List the charging stations within a radius",
	RunE:  runStations,
}

func init() {
	stationsCmd.Flags().Float64Var(&stationsLat, "lat", 0, "latitude")
	stationsCmd.Flags().Float64Var(&stationsLon, "lon", 0, "longitude")
	stationsCmd.Flags().Float64Var(&stationsRadius, "radius", 0, "radius in km (defaults to ranking.radius_km)")
	_ = stationsCmd.MarkFlagRequired("lat")
	_ = stationsCmd.MarkFlagRequired("lon")
	rootCmd.AddCommand(stationsCmd)
}

func runStations(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	q := model.Query{Lat: stationsLat, Lon: stationsLon}
	if err := q.Validate(); err != nil {
		return err
	}
	radius := stationsRadius
	if radius == 0 {
		radius = cfg.Ranking.RadiusKm
	}
	set, err := stations.LoadFile(cfg.Stations.Path)
	if err != nil {
		return err
	}
	matches, err := geo.FindNearby(q.Location(), set, radius)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STATION\tLAT\tLON\tENCODED\tDISTANCE_KM")
	for _, m := range matches {
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%d\t%.3f\n",
			m.Station.Name, m.Station.Location.Lat, m.Station.Location.Lon, m.Station.Encoded, m.DistanceKm)
	}
	return w.Flush()
}
