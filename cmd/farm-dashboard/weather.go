package main

import (
	"encoding/json"
	"fmt"

	"farm-dashboard/internal/weather"

	"github.com/spf13/cobra"
)

var (
	weatherLat   float64
	weatherLon   float64
	weatherField string
)

var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Print current weather and forecast as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd.Context())
		defer cancel()

		a, err := newApp(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		at := weather.Coordinates{Lat: weatherLat, Lon: weatherLon}
		if weatherField != "" {
			field, err := a.services.Fields.GetByID(ctx, weatherField)
			if err != nil {
				return err
			}
			at = weather.FromPoint(field.Coordinates)
		}
		if err := at.Validate(); err != nil {
			return fmt.Errorf("invalid coordinates: %w", err)
		}

		report, err := a.weather.Report(ctx, at)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	weatherCmd.Flags().Float64Var(&weatherLat, "lat", 0, "Latitude (default: configured home)")
	weatherCmd.Flags().Float64Var(&weatherLon, "lon", 0, "Longitude (default: configured home)")
	weatherCmd.Flags().StringVar(&weatherField, "field", "", "Use the coordinates of this field id")
}
