package cmd

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/LithiraHettiarachchi/gridSense/api/predict"
	"github.com/LithiraHettiarachchi/gridSense/app"
	"github.com/LithiraHettiarachchi/gridSense/core/model"
)

var predictLat, predictLon float64

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Rank the stations around a location and print the result",
	RunE:  runPredict,
}

func init() {
	predictCmd.Flags().Float64Var(&predictLat, "lat", 0, "user latitude")
	predictCmd.Flags().Float64Var(&predictLon, "lon", 0, "user longitude")
	_ = predictCmd.MarkFlagRequired("lat")
	_ = predictCmd.MarkFlagRequired("lon")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ranker, _, err := app.NewRanker(cfg, nil)
	if err != nil {
		return err
	}
	res, err := ranker.Rank(ctx, model.Query{Lat: predictLat, Lon: predictLon})
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(predict.NewResponse(res))
}
