package config

import (
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	BLE       BLEConfig       `yaml:"ble"`
	Geo       GeoConfig       `yaml:"geo"`
	Animation AnimationConfig `yaml:"animation"`
	Daylight  DaylightConfig  `yaml:"daylight"`
	Ledger    LedgerConfig    `yaml:"ledger"`
	Log       LogConfig       `yaml:"log"`
}

// BLEConfig contains device discovery and transport settings
type BLEConfig struct {
	// NameFilter selects the fixture: the first advertising device whose
	// local name contains this substring wins.
	NameFilter string   `yaml:"name_filter"`
	ScanWindow Duration `yaml:"scan_window"`
	// Characteristic is the 16-bit identifier of the writable command
	// characteristic exposed by the fixture.
	Characteristic uint16 `yaml:"characteristic"`
}

// GeoConfig contains the coordinate used for sunrise/sunset calculations
type GeoConfig struct {
	Lat      float64 `yaml:"lat"`
	Lon      float64 `yaml:"lon"`
	Timezone string  `yaml:"timezone"`
}

// AnimationConfig contains color cycle settings
type AnimationConfig struct {
	CycleInterval Duration `yaml:"cycle_interval"` // Delay between color frames
	IdleInterval  Duration `yaml:"idle_interval"`  // Sleep while suppressed
	StartHue      float64  `yaml:"start_hue"`      // Initial hue cursor, degrees
	HueStep       float64  `yaml:"hue_step"`       // Degrees advanced per tick
}

// DaylightConfig contains day/night coordinator settings
type DaylightConfig struct {
	CheckInterval Duration `yaml:"check_interval"`
}

// LedgerConfig contains transition journal settings
type LedgerConfig struct {
	Disabled      bool   `yaml:"disabled"`
	Path          string `yaml:"path"`
	RetentionDays int    `yaml:"retention_days"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level   string `yaml:"level"`
	UseJSON bool   `yaml:"json"`
	Colors  bool   `yaml:"colors"`
}

// GetLevel returns the log level with default
func (c *LogConfig) GetLevel() string {
	if c.Level == "" {
		return "info"
	}
	return c.Level
}

// Duration is a wrapper around time.Duration for YAML unmarshalling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Default coordinate: the fixture's install location (Budapest)
const (
	defaultLat = 47.552922
	defaultLon = 19.254477
)

// Default returns the built-in configuration, used when no config file exists
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	return &cfg, nil
}

// ApplyDefaults fills defaults for all unset fields
func (cfg *Config) ApplyDefaults() {
	// BLE defaults
	if cfg.BLE.NameFilter == "" {
		cfg.BLE.NameFilter = "Light"
	}
	if cfg.BLE.ScanWindow == 0 {
		cfg.BLE.ScanWindow = Duration(2 * time.Second)
	}
	if cfg.BLE.Characteristic == 0 {
		cfg.BLE.Characteristic = 0x1001
	}

	// Geo defaults
	if cfg.Geo.Lat == 0 && cfg.Geo.Lon == 0 {
		cfg.Geo.Lat = defaultLat
		cfg.Geo.Lon = defaultLon
	}
	if cfg.Geo.Timezone == "" {
		cfg.Geo.Timezone = "UTC"
	}

	// Animation defaults
	if cfg.Animation.CycleInterval == 0 {
		cfg.Animation.CycleInterval = Duration(10 * time.Millisecond)
	}
	if cfg.Animation.IdleInterval == 0 {
		cfg.Animation.IdleInterval = Duration(60 * time.Second)
	}
	if cfg.Animation.StartHue == 0 {
		cfg.Animation.StartHue = 1.0
	}
	if cfg.Animation.HueStep == 0 {
		cfg.Animation.HueStep = 1.0
	}

	// Daylight defaults
	if cfg.Daylight.CheckInterval == 0 {
		cfg.Daylight.CheckInterval = Duration(2 * time.Minute)
	}

	// Ledger defaults
	if cfg.Ledger.Path == "" {
		cfg.Ledger.Path = "./actueld.sqlite"
	}
	if cfg.Ledger.RetentionDays == 0 {
		cfg.Ledger.RetentionDays = 30
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}
func expandEnvVars(input string) string {
	// Match ${VAR} or ${VAR:default}
	re := regexp.MustCompile(`\$\{([^}:]+)(?::([^}]*))?\}`)

	return re.ReplaceAllStringFunc(input, func(match string) string {
		parts := re.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		varName := parts[1]
		defaultVal := ""
		if len(parts) >= 3 {
			defaultVal = parts[2]
		}

		if val := os.Getenv(varName); val != "" {
			return val
		}
		return defaultVal
	})
}
