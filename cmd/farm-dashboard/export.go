package main

import (
	"fmt"
	"os"

	"farm-dashboard/internal/analytics"
	"farm-dashboard/internal/export"

	"github.com/spf13/cobra"
)

var (
	exportSeason  string
	exportYear    int
	exportFormat  string
	exportOutput  string
	exportField   string
	exportCrop    string
	exportArchive bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a seasonal report as CSV or XLSX",
	RunE: func(cmd *cobra.Command, args []string) error {
		season, err := analytics.ParseSeason(exportSeason)
		if err != nil {
			return err
		}
		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}

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

		filter := analytics.ReportFilter{
			Season:   season,
			Year:     exportYear,
			FieldID:  exportField,
			CropType: exportCrop,
		}

		if exportArchive {
			info, err := a.services.Exports.Archive(ctx, filter, format)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), info.Key)
			return nil
		}

		out := cmd.OutOrStdout()
		if exportOutput != "" && exportOutput != "-" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", exportOutput, err)
			}
			defer f.Close()
			out = f
		}

		filename, err := a.services.Exports.Render(ctx, filter, format, out)
		if err != nil {
			return err
		}
		logger.Info("report exported", "filename", filename, "output", exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportSeason, "season", "s", "all", "Season: all|spring|summer|fall|winter")
	exportCmd.Flags().IntVarP(&exportYear, "year", "y", 0, "Report year (default: current year)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "Output format: csv|xlsx")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "-", "Output file, - for stdout")
	exportCmd.Flags().StringVar(&exportField, "field", "", "Restrict to one field id")
	exportCmd.Flags().StringVar(&exportCrop, "crop", "", "Restrict to one crop type")
	exportCmd.Flags().BoolVar(&exportArchive, "archive", false, "Store the report in the blob archive and print its key")
}
