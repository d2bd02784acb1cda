package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no explicit config path is given
const DefaultPath = "config.yml"

const defaultFeedBaseURL = "http://127.0.0.1:5343/gtfs/seq/"

// Default returns the configuration used when no config file exists
func Default() AppConfig {
	return AppConfig{
		Station: StationConfig{
			ParentStation: "place_uqlksa",
			Name:          "UQ Lakes station",
		},
		GTFS: GTFSConfig{
			StaticSource: "static-data",
		},
		GTFSRT: GTFSRTConfig{
			BaseURL: defaultFeedBaseURL,
		},
		Cache: CacheConfig{
			Dir:                  "cached-data",
			TripUpdatesFile:      "trip-updates-cache.json",
			VehiclePositionsFile: "vehicle-locations-cache.json",
		},
	}
}

// LoadAppConfig loads and validates the application configuration.
// An empty path reads DefaultPath and falls back to Default when it does not exist;
// an explicit path that cannot be read is an error.
func LoadAppConfig(path string) (AppConfig, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case !explicit && errors.Is(err, fs.ErrNotExist):
		log.Debug().Str("file", path).Msg("No config file, using defaults")
	default:
		return AppConfig{}, err
	}

	if err := applyEnv(&cfg); err != nil {
		return AppConfig{}, err
	}

	cfg.GTFSRT.resolve()

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// resolve fills feed URLs that were not set explicitly from the base URL
func (c *GTFSRTConfig) resolve() {
	if c.BaseURL == "" {
		c.BaseURL = defaultFeedBaseURL
	}
	base := c.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	if c.TripUpdatesURL == "" {
		c.TripUpdatesURL = base + "trip_updates.json"
	}
	if c.VehiclePositionsURL == "" {
		c.VehiclePositionsURL = base + "vehicle_positions.json"
	}
}

func applyEnv(cfg *AppConfig) error {
	if v := os.Getenv("BUSBOARD_PARENT_STATION"); v != "" {
		cfg.Station.ParentStation = v
	}
	if v := os.Getenv("BUSBOARD_TIMEZONE"); v != "" {
		cfg.Station.Timezone = v
	}
	if v := os.Getenv("BUSBOARD_STATIC_SOURCE"); v != "" {
		cfg.GTFS.StaticSource = v
	}
	if v := os.Getenv("BUSBOARD_FEED_BASE_URL"); v != "" {
		// explicit feed URLs from the file were derived from the old base
		cfg.GTFSRT.BaseURL = v
		cfg.GTFSRT.TripUpdatesURL = ""
		cfg.GTFSRT.VehiclePositionsURL = ""
	}
	if v := os.Getenv("BUSBOARD_FEED_TIMEOUT_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			return fmt.Errorf("invalid BUSBOARD_FEED_TIMEOUT_MS: %q", v)
		}
		cfg.GTFSRT.TimeoutMS = ms
	}
	if v := os.Getenv("BUSBOARD_CACHE_DIR"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := os.Getenv("BUSBOARD_METRICS_TEXTFILE"); v != "" {
		cfg.Metrics.Textfile = v
	}
	return nil
}
