package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
grid:
  rows: 10
  cols: 12
  pattern: glider
rules:
  lower: 1
  upper: 4
  resurrect: 3
controller:
  automatic: false
  delay_ms: 40
mqtt:
  enabled: true
  host: broker.local
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Grid.Rows != 10 || cfg.Grid.Cols != 12 || cfg.Grid.Pattern != "glider" {
		t.Errorf("Grid = %+v", cfg.Grid)
	}
	if cfg.Controller.Automatic {
		t.Error("Controller.Automatic should be false")
	}
	lc := cfg.LifeConfig()
	if lc.Rules.LowerBound != 1 || lc.Rules.UpperBound != 4 || lc.Rules.ResurrectExact != 3 {
		t.Errorf("Rules = %+v", lc.Rules)
	}
	if lc.Delay != 40*time.Millisecond {
		t.Errorf("Delay = %v", lc.Delay)
	}
	if cfg.MQTT.Port != 1883 {
		t.Errorf("MQTT.Port default lost: %d", cfg.MQTT.Port)
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Grid.Rows != 32 || cfg.Controller.DelayMS != 250 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.ServerAddr() != "127.0.0.1:8080" {
		t.Errorf("ServerAddr() = %q", cfg.ServerAddr())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "invalid: [yaml: content")
	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	path := writeConfig(t, `
grid:
  rows: 0
rules:
  lower: -1
`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() expected validation error")
	}
	for _, want := range []string{"grid size", "rules must be non-negative"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TORUSLIFE_ROWS", "7")
	t.Setenv("TORUSLIFE_PATTERN", "block")
	t.Setenv("TORUSLIFE_DELAY_MS", "not-a-number")
	t.Setenv("TORUSLIFE_MQTT_HOST", "mqtt.example")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Grid.Rows != 7 || cfg.Grid.Pattern != "block" {
		t.Errorf("Grid = %+v", cfg.Grid)
	}
	if cfg.Controller.DelayMS != 250 {
		t.Errorf("malformed override should be ignored, got %d", cfg.Controller.DelayMS)
	}
	if cfg.MQTT.Host != "mqtt.example" {
		t.Errorf("MQTT.Host = %q", cfg.MQTT.Host)
	}
}

func TestValidate_ServiceSections(t *testing.T) {
	cfg := Default()
	cfg.MQTT.Enabled = true
	cfg.MQTT.QoS = 3
	cfg.InfluxDB.Enabled = true
	cfg.InfluxDB.Bucket = ""
	cfg.Server.Port = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected errors")
	}
	for _, want := range []string{"mqtt.qos", "influxdb.url", "server.port"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestLoad_DensityDefaultAndExplicitZero(t *testing.T) {
	cfg, err := Load(writeConfig(t, "grid:\n  pattern: random\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Grid.Density != 0.3 {
		t.Fatalf("omitted density = %v, want 0.3", cfg.Grid.Density)
	}

	cfg, err = Load(writeConfig(t, "grid:\n  pattern: random\n  density: 0\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Grid.Density != 0 {
		t.Fatalf("explicit density = %v, want 0", cfg.Grid.Density)
	}
}
