package main

import (
	"log/slog"
	"os"

	"farm-dashboard/internal/config"
	"farm-dashboard/internal/logging"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "farm-dashboard",
	Short: "Farm management data service",
	Long: `farm-dashboard serves the data behind the farm management dashboard:
fields, crops, tasks, resources, equipment and maintenance, expenses,
budgets and income, together with analytics, seasonal reports and weather.

Configuration is read from config.yaml (./configs or the working directory,
or --config), a .env file and FARM_* environment variables.

Examples:
  # Run the HTTP API on the configured port
  farm-dashboard serve

  # Write the spring 2024 report as a spreadsheet
  farm-dashboard export --season spring --year 2024 --format xlsx -o spring.xlsx

  # Print the weather for field 1
  farm-dashboard weather --field 1`,
	SilenceUsage: true,
}

var (
	configPath string
	logLevel   string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log.level: debug|info|warn|error")

	rootCmd.AddCommand(serveCmd, exportCmd, weatherCmd)
}

// loadConfig reads the configuration and builds the logger for a command
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	slog.SetDefault(logger)
	return cfg, logger, nil
}
