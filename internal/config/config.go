// Package config loads the toruslife daemon configuration from YAML.
//
// Load order is: built-in defaults, then the YAML file, then TORUSLIFE_*
// environment overrides, then Validate.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"toruslife/pkg/life"
)

// Config is the root configuration structure.
type Config struct {
	Grid       GridConfig       `yaml:"grid"`
	Rules      RulesConfig      `yaml:"rules"`
	Controller ControllerConfig `yaml:"controller"`
	Logging    LoggingConfig    `yaml:"logging"`
	MQTT       MQTTConfig       `yaml:"mqtt"`
	InfluxDB   InfluxDBConfig   `yaml:"influxdb"`
	Server     ServerConfig     `yaml:"server"`
}

// GridConfig describes the initial grid.
type GridConfig struct {
	Rows    int     `yaml:"rows"`
	Cols    int     `yaml:"cols"`
	Pattern string  `yaml:"pattern"`
	Density float64 `yaml:"density"`
	Seed    int64   `yaml:"seed"`
}

// RulesConfig holds the neighbor thresholds.
type RulesConfig struct {
	Lower     int `yaml:"lower"`
	Upper     int `yaml:"upper"`
	Resurrect int `yaml:"resurrect"`
}

// ControllerConfig holds the progression settings applied at start.
type ControllerConfig struct {
	Automatic bool `yaml:"automatic"`
	DelayMS   int  `yaml:"delay_ms"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	ClientID    string `yaml:"client_id"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	QoS         int    `yaml:"qos"`
	TopicPrefix string `yaml:"topic_prefix"`
}

// InfluxDBConfig contains InfluxDB connection settings.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// ServerConfig contains HTTP API settings.
type ServerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// Load reads the configuration at path. An empty path yields the defaults
// with environment overrides applied.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	rules := life.StandardRules()
	return &Config{
		Grid: GridConfig{Rows: 32, Cols: 32, Pattern: "random", Density: 0.3, Seed: 1},
		Rules: RulesConfig{
			Lower:     rules.LowerBound,
			Upper:     rules.UpperBound,
			Resurrect: rules.ResurrectExact,
		},
		Controller: ControllerConfig{Automatic: true, DelayMS: 250},
		Logging:    LoggingConfig{Level: "info", Format: "json", Output: "stdout"},
		MQTT: MQTTConfig{
			Host:        "localhost",
			Port:        1883,
			ClientID:    "toruslife",
			QoS:         1,
			TopicPrefix: "toruslife",
		},
		InfluxDB: InfluxDBConfig{
			URL:           "http://localhost:8086",
			Org:           "toruslife",
			Bucket:        "toruslife",
			BatchSize:     100,
			FlushInterval: 10,
		},
		Server: ServerConfig{Enabled: true, Host: "127.0.0.1", Port: 8080},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TORUSLIFE_PATTERN"); v != "" {
		cfg.Grid.Pattern = v
	}
	if n, ok := envInt("TORUSLIFE_ROWS"); ok {
		cfg.Grid.Rows = n
	}
	if n, ok := envInt("TORUSLIFE_COLS"); ok {
		cfg.Grid.Cols = n
	}
	if n, ok := envInt("TORUSLIFE_DELAY_MS"); ok {
		cfg.Controller.DelayMS = n
	}
	if v := os.Getenv("TORUSLIFE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TORUSLIFE_MQTT_HOST"); v != "" {
		cfg.MQTT.Host = v
	}
	if v := os.Getenv("TORUSLIFE_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Username = v
	}
	if v := os.Getenv("TORUSLIFE_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Password = v
	}
	if v := os.Getenv("TORUSLIFE_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
	if v := os.Getenv("TORUSLIFE_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Validate checks the configuration for errors, reporting all of them at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Grid.Rows <= 0 || c.Grid.Cols <= 0 {
		errs = append(errs, fmt.Sprintf("grid size %dx%d must be positive", c.Grid.Rows, c.Grid.Cols))
	}
	if c.Grid.Pattern == "" {
		errs = append(errs, "grid.pattern is required")
	}
	if c.Grid.Density < 0 || c.Grid.Density > 1 {
		errs = append(errs, "grid.density must be within [0, 1]")
	}
	if c.Rules.Lower < 0 || c.Rules.Upper < 0 || c.Rules.Resurrect < 0 {
		errs = append(errs, "rules must be non-negative")
	}
	if c.Controller.DelayMS < 0 {
		errs = append(errs, "controller.delay_ms must be non-negative")
	}
	if c.MQTT.Enabled {
		if c.MQTT.Host == "" {
			errs = append(errs, "mqtt.host is required")
		}
		if c.MQTT.Port <= 0 || c.MQTT.Port > 65535 {
			errs = append(errs, "mqtt.port must be between 1 and 65535")
		}
		if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
			errs = append(errs, "mqtt.qos must be 0, 1 or 2")
		}
	}
	if c.InfluxDB.Enabled && (c.InfluxDB.URL == "" || c.InfluxDB.Bucket == "") {
		errs = append(errs, "influxdb.url and influxdb.bucket are required")
	}
	if c.Server.Enabled && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		errs = append(errs, "server.port must be between 1 and 65535")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// LifeConfig converts the rules and controller sections for the engine.
func (c *Config) LifeConfig() life.Config {
	return life.Config{
		Rules: life.Rules{
			LowerBound:     c.Rules.Lower,
			UpperBound:     c.Rules.Upper,
			ResurrectExact: c.Rules.Resurrect,
		},
		Delay: c.Delay(),
	}
}

// Delay returns the automatic-mode pause.
func (c *Config) Delay() time.Duration {
	return time.Duration(c.Controller.DelayMS) * time.Millisecond
}

// ServerAddr returns host:port for the HTTP listener.
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
