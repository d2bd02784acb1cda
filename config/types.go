package config

// StationConfig identifies the one station the board serves
type StationConfig struct {
	ParentStation string `yaml:"parentStation" validate:"required"`
	Name          string `yaml:"name"`
	Timezone      string `yaml:"timezone" validate:"omitempty,timezone"`
}

// GTFSConfig contains GTFS static source configuration.
// StaticSource may be a directory, a local zip file or an http(s) URL to a zip.
type GTFSConfig struct {
	StaticSource string `yaml:"staticSource" validate:"required"`
}

// GTFSRTConfig contains GTFS-Realtime feed configuration
type GTFSRTConfig struct {
	BaseURL             string `yaml:"baseURL" validate:"omitempty,url"`
	TripUpdatesURL      string `yaml:"tripUpdatesURL"`
	VehiclePositionsURL string `yaml:"vehiclePositionsURL"`
	TimeoutMS           int    `yaml:"timeoutMS" validate:"gte=0"`
}

// CacheConfig contains live feed cache file locations
type CacheConfig struct {
	Dir                  string `yaml:"dir" validate:"required"`
	TripUpdatesFile      string `yaml:"tripUpdatesFile" validate:"required"`
	VehiclePositionsFile string `yaml:"vehiclePositionsFile" validate:"required"`
}

// MetricsConfig contains the optional prometheus textfile export path
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Station StationConfig `yaml:"station" validate:"required"`
	GTFS    GTFSConfig    `yaml:"gtfs" validate:"required"`
	GTFSRT  GTFSRTConfig  `yaml:"gtfsrt"`
	Cache   CacheConfig   `yaml:"cache" validate:"required"`
	Metrics MetricsConfig `yaml:"metrics"`
}
