package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"farm-dashboard/internal/blob"
	"farm-dashboard/internal/repository"
	"farm-dashboard/internal/service"
	"farm-dashboard/internal/weather"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 || cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("unexpected server config %+v", cfg.Server)
	}
	if cfg.Storage.Driver != repository.DriverMemory || !cfg.Storage.Seed {
		t.Errorf("unexpected storage config %+v", cfg.Storage)
	}
	if cfg.Blob.Driver != blob.DriverMemory {
		t.Errorf("blob driver = %q, want memory", cfg.Blob.Driver)
	}
	if got := cfg.Latency.Durations(); got != service.DefaultLatency() {
		t.Errorf("latency = %+v, want defaults", got)
	}
	if cfg.Weather.Home() != weather.DefaultCoordinates {
		t.Errorf("weather home = %v, want %v", cfg.Weather.Home(), weather.DefaultCoordinates)
	}
	if cfg.Weather.Cache != "memory" || cfg.Weather.CacheTTL != 10*time.Minute {
		t.Errorf("unexpected weather cache %q %v", cfg.Weather.Cache, cfg.Weather.CacheTTL)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
storage:
  driver: sqlite
  sqlite_path: /var/lib/farm/farm.db
latency:
  enabled: true
  list: 50ms
weather:
  lat: 42.03
  lon: -93.63
log:
  level: debug
`)
	t.Setenv("FARM_SERVER_PORT", "7070")
	t.Setenv("FARM_WEATHER_API_KEY", "secret")
	t.Setenv("FARM_LATENCY_GET", "5ms")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, environment must override the file", cfg.Server.Port)
	}
	if cfg.Storage.Driver != repository.DriverSQLite || cfg.Storage.SQLitePath != "/var/lib/farm/farm.db" {
		t.Errorf("unexpected storage config %+v", cfg.Storage)
	}
	if cfg.Weather.APIKey != "secret" {
		t.Errorf("api key = %q", cfg.Weather.APIKey)
	}
	if (cfg.Weather.Home() != weather.Coordinates{Lat: 42.03, Lon: -93.63}) {
		t.Errorf("weather home = %v", cfg.Weather.Home())
	}
	latency := cfg.Latency.Durations()
	if latency.List != 50*time.Millisecond || latency.Get != 5*time.Millisecond || latency.Create != 400*time.Millisecond {
		t.Errorf("unexpected latency %+v", latency)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}

func TestLatencyDisabled(t *testing.T) {
	t.Setenv("FARM_LATENCY_ENABLED", "false")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := cfg.Latency.Durations(); got != (service.Latency{}) {
		t.Errorf("latency = %+v, want zero when disabled", got)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "port out of range",
			env:     map[string]string{"FARM_SERVER_PORT": "70000"},
			wantErr: "server.port",
		},
		{
			name:    "unknown storage driver",
			env:     map[string]string{"FARM_STORAGE_DRIVER": "mongo"},
			wantErr: "storage.driver",
		},
		{
			name:    "postgres without dsn",
			env:     map[string]string{"FARM_STORAGE_DRIVER": "postgres"},
			wantErr: "storage.postgres_dsn",
		},
		{
			name:    "s3 without bucket",
			env:     map[string]string{"FARM_BLOB_DRIVER": "s3"},
			wantErr: "blob.bucket",
		},
		{
			name:    "unknown weather cache",
			env:     map[string]string{"FARM_WEATHER_CACHE": "disk"},
			wantErr: "weather.cache",
		},
		{
			name:    "home latitude out of range",
			env:     map[string]string{"FARM_WEATHER_LAT": "95"},
			wantErr: "weather home location",
		},
		{
			name:    "unknown log level",
			env:     map[string]string{"FARM_LOG_LEVEL": "trace"},
			wantErr: "log.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			if err == nil {
				t.Fatalf("Load() succeeded, want error mentioning %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}
