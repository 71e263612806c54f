package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for accml.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Machine   MachineConfig   `yaml:"machine"`
	Inventory InventoryConfig `yaml:"inventory"`
	Database  DatabaseConfig  `yaml:"database"`
	Backend   BackendConfig   `yaml:"backend"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	InfluxDB  InfluxDBConfig  `yaml:"influxdb"`
	API       APIConfig       `yaml:"api"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// MachineConfig contains the facility constants the catalogue builder
// needs.
type MachineConfig struct {
	// Name identifies the facility, e.g. "bessyii".
	Name string `yaml:"name"`

	// Brho is the magnetic rigidity in Tm.
	Brho float64 `yaml:"brho"`

	// Energy is the beam energy in eV. Informational.
	Energy float64 `yaml:"energy"`

	// FloquetToFrequency scales fractional tunes to kicker frequency.
	// Zero selects the built-in default.
	FloquetToFrequency float64 `yaml:"floquet_to_frequency"`

	// DesignTune is the design working point of the simulated machine.
	DesignTune TuneConfig `yaml:"design_tune"`
}

// TuneConfig holds a working point per transversal plane.
type TuneConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// InventoryConfig selects where the equipment catalogue is loaded from.
type InventoryConfig struct {
	// Source is "file" or "sqlite".
	Source string `yaml:"source"`

	// MagnetsPath and PowerConvertersPath locate the catalogue files
	// when source is "file", or the seed files when SeedFromFiles is set.
	MagnetsPath         string `yaml:"magnets_path"`
	PowerConvertersPath string `yaml:"power_converters_path"`

	// SeedFromFiles imports the catalogue files into the database on
	// startup when source is "sqlite", replacing the stored catalogue.
	SeedFromFiles bool `yaml:"seed_from_files"`
}

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// BackendConfig selects and names the device backend.
type BackendConfig struct {
	// Mode is "sim" or "live".
	Mode string `yaml:"mode"`

	// Name is the backend instance name used in logs and telemetry.
	Name string `yaml:"name"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Enabled   bool                `yaml:"enabled"`
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
	MaxAttempts  int `yaml:"max_attempts"`
}

// InfluxDBConfig contains InfluxDB connection settings for operational
// telemetry.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	TLS      TLSConfig        `yaml:"tls"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
}

// TLSConfig contains TLS certificate settings.
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// APITimeoutConfig contains HTTP timeout settings, in seconds.
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: ACCML_SECTION_KEY
// For example: ACCML_DATABASE_PATH, ACCML_MQTT_HOST
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // Path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Machine: MachineConfig{
			Name:       "bessyii",
			Brho:       5.67229387129245,
			Energy:     1.7e9,
			DesignTune: TuneConfig{X: 17.84, Y: 6.73},
		},
		Inventory: InventoryConfig{
			Source:              "file",
			MagnetsPath:         "./configs/magnets.yaml",
			PowerConvertersPath: "./configs/power_converters.yaml",
		},
		Database: DatabaseConfig{
			Path:        "./data/accml.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		Backend: BackendConfig{
			Mode: "sim",
			Name: "design",
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "accml-core",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
				MaxAttempts:  0,
			},
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: ACCML_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ACCML_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	if v := os.Getenv("ACCML_INVENTORY_SOURCE"); v != "" {
		cfg.Inventory.Source = v
	}

	if v := os.Getenv("ACCML_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("ACCML_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("ACCML_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	if v := os.Getenv("ACCML_API_HOST"); v != "" {
		cfg.API.Host = v
	}

	if v := os.Getenv("ACCML_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []string

	if c.Machine.Name == "" {
		errs = append(errs, "machine.name is required")
	}
	if c.Machine.Brho == 0 {
		errs = append(errs, "machine.brho is required and must be non-zero")
	}

	switch c.Inventory.Source {
	case "file":
		if c.Inventory.MagnetsPath == "" {
			errs = append(errs, "inventory.magnets_path is required for file source")
		}
		if c.Inventory.PowerConvertersPath == "" {
			errs = append(errs, "inventory.power_converters_path is required for file source")
		}
	case "sqlite":
		if c.Database.Path == "" {
			errs = append(errs, "database.path is required for sqlite source")
		}
		if c.Inventory.SeedFromFiles {
			if c.Inventory.MagnetsPath == "" {
				errs = append(errs, "inventory.magnets_path is required when seed_from_files is set")
			}
			if c.Inventory.PowerConvertersPath == "" {
				errs = append(errs, "inventory.power_converters_path is required when seed_from_files is set")
			}
		}
	default:
		errs = append(errs, "inventory.source must be \"file\" or \"sqlite\"")
	}

	switch c.Backend.Mode {
	case "sim", "live":
	default:
		errs = append(errs, "backend.mode must be \"sim\" or \"live\"")
	}

	if c.Backend.Mode == "live" && !c.MQTT.Enabled {
		errs = append(errs, "backend.mode \"live\" requires mqtt.enabled")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}

	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}
