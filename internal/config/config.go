// Package config loads the dashboard configuration from an optional YAML
// file, a .env file and FARM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"farm-dashboard/internal/blob"
	"farm-dashboard/internal/repository"
	"farm-dashboard/internal/service"
	"farm-dashboard/internal/weather"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. FARM_SERVER_PORT
const EnvPrefix = "FARM"

type Config struct {
	Server  ServerConfig      `mapstructure:"server"`
	Storage repository.Config `mapstructure:"storage"`
	Latency LatencyConfig     `mapstructure:"latency"`
	Weather WeatherConfig     `mapstructure:"weather"`
	Redis   RedisConfig       `mapstructure:"redis"`
	Blob    blob.Config       `mapstructure:"blob"`
	Log     LogConfig         `mapstructure:"log"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LatencyConfig controls the simulated service delays
type LatencyConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	service.Latency `mapstructure:",squash"`
}

// Durations returns the delays to apply, all zero when disabled
func (c LatencyConfig) Durations() service.Latency {
	if !c.Enabled {
		return service.Latency{}
	}
	return c.Latency
}

type WeatherConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	Lat       float64       `mapstructure:"lat"`
	Lon       float64       `mapstructure:"lon"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Cache     string        `mapstructure:"cache"` // none, memory or redis
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
	CacheSize int           `mapstructure:"cache_size"`
}

// Home returns the configured default weather location
func (c WeatherConfig) Home() weather.Coordinates {
	return weather.Coordinates{Lat: c.Lat, Lon: c.Lon}
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	latency := service.DefaultLatency()

	defaults := map[string]any{
		"server.port":             8080,
		"server.mode":             "release",
		"server.read_timeout":     15 * time.Second,
		"server.write_timeout":    30 * time.Second,
		"server.shutdown_timeout": 10 * time.Second,

		"storage.driver":       string(repository.DriverMemory),
		"storage.sqlite_path":  "farm.db",
		"storage.postgres_dsn": "",
		"storage.snapshot_dir": "",
		"storage.seed":         true,

		"latency.enabled":   true,
		"latency.list":      latency.List,
		"latency.get":       latency.Get,
		"latency.create":    latency.Create,
		"latency.update":    latency.Update,
		"latency.delete":    latency.Delete,
		"latency.analytics": latency.Analytics,

		"weather.api_key":    "",
		"weather.base_url":   weather.DefaultBaseURL,
		"weather.lat":        weather.DefaultCoordinates.Lat,
		"weather.lon":        weather.DefaultCoordinates.Lon,
		"weather.timeout":    10 * time.Second,
		"weather.cache":      "memory",
		"weather.cache_ttl":  10 * time.Minute,
		"weather.cache_size": 256,

		"redis.addr":     "localhost:6379",
		"redis.password": "",
		"redis.db":       0,

		"blob.driver":            string(blob.DriverMemory),
		"blob.bucket":            "",
		"blob.region":            "",
		"blob.endpoint":          "",
		"blob.access_key_id":     "",
		"blob.secret_access_key": "",
		"blob.path_style":        false,

		"log.level":  "info",
		"log.format": "json",
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// Load reads configuration. An explicit path must exist; otherwise
// config.yaml is looked up in ./configs and the working directory and may
// be absent. Values from .env are loaded into the environment first, and
// FARM_* variables override the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode))
	}

	switch c.Storage.Driver {
	case repository.DriverMemory, repository.DriverSQLite:
	case repository.DriverPostgres:
		if c.Storage.PostgresDSN == "" {
			errs = append(errs, errors.New("storage.postgres_dsn is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q must be memory, sqlite or postgres", c.Storage.Driver))
	}

	switch c.Blob.Driver {
	case blob.DriverMemory:
	case blob.DriverS3:
		if c.Blob.Bucket == "" {
			errs = append(errs, errors.New("blob.bucket is required for the s3 driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("blob.driver %q must be memory or s3", c.Blob.Driver))
	}

	switch c.Weather.Cache {
	case "none", "memory", "redis":
	default:
		errs = append(errs, fmt.Errorf("weather.cache %q must be none, memory or redis", c.Weather.Cache))
	}
	if err := c.Weather.Home().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("weather home location: %w", err))
	}

	if _, ok := logLevels[strings.ToLower(c.Log.Level)]; !ok {
		errs = append(errs, fmt.Errorf("log.level %q must be debug, info, warn or error", c.Log.Level))
	}

	return errors.Join(errs...)
}

var logLevels = map[string]struct{}{"debug": {}, "info": {}, "warn": {}, "error": {}}
