package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}"))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.BLE.NameFilter != "Light" {
		t.Errorf("NameFilter = %q, want %q", cfg.BLE.NameFilter, "Light")
	}
	if cfg.BLE.ScanWindow.Duration() != 2*time.Second {
		t.Errorf("ScanWindow = %s, want 2s", cfg.BLE.ScanWindow.Duration())
	}
	if cfg.BLE.Characteristic != 0x1001 {
		t.Errorf("Characteristic = %#x, want 0x1001", cfg.BLE.Characteristic)
	}
	if cfg.Geo.Lat != 47.552922 || cfg.Geo.Lon != 19.254477 {
		t.Errorf("coordinate = (%v,%v), want default Budapest", cfg.Geo.Lat, cfg.Geo.Lon)
	}
	if cfg.Animation.CycleInterval.Duration() != 10*time.Millisecond {
		t.Errorf("CycleInterval = %s, want 10ms", cfg.Animation.CycleInterval.Duration())
	}
	if cfg.Animation.IdleInterval.Duration() != 60*time.Second {
		t.Errorf("IdleInterval = %s, want 60s", cfg.Animation.IdleInterval.Duration())
	}
	if cfg.Animation.StartHue != 1.0 {
		t.Errorf("StartHue = %v, want 1.0", cfg.Animation.StartHue)
	}
	if cfg.Daylight.CheckInterval.Duration() != 2*time.Minute {
		t.Errorf("CheckInterval = %s, want 2m", cfg.Daylight.CheckInterval.Duration())
	}
	if cfg.Ledger.Disabled {
		t.Error("journal disabled by default")
	}
	if cfg.Log.GetLevel() != "info" {
		t.Errorf("log level = %q, want info", cfg.Log.GetLevel())
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
ble:
  name_filter: "Actuel"
  scan_window: "5s"
geo:
  lat: 60.17
  lon: 24.94
animation:
  cycle_interval: "20ms"
  start_hue: 180.0
daylight:
  check_interval: "30s"
ledger:
  disabled: true
log:
  level: "debug"
`))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.BLE.NameFilter != "Actuel" {
		t.Errorf("NameFilter = %q, want %q", cfg.BLE.NameFilter, "Actuel")
	}
	if cfg.BLE.ScanWindow.Duration() != 5*time.Second {
		t.Errorf("ScanWindow = %s, want 5s", cfg.BLE.ScanWindow.Duration())
	}
	if cfg.Geo.Lat != 60.17 || cfg.Geo.Lon != 24.94 {
		t.Errorf("coordinate = (%v,%v), want (60.17,24.94)", cfg.Geo.Lat, cfg.Geo.Lon)
	}
	if cfg.Animation.CycleInterval.Duration() != 20*time.Millisecond {
		t.Errorf("CycleInterval = %s, want 20ms", cfg.Animation.CycleInterval.Duration())
	}
	if cfg.Animation.StartHue != 180.0 {
		t.Errorf("StartHue = %v, want 180.0", cfg.Animation.StartHue)
	}
	if cfg.Daylight.CheckInterval.Duration() != 30*time.Second {
		t.Errorf("CheckInterval = %s, want 30s", cfg.Daylight.CheckInterval.Duration())
	}
	if !cfg.Ledger.Disabled {
		t.Error("journal not disabled")
	}
	if cfg.Log.GetLevel() != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.GetLevel())
	}
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("ACTUELD_FILTER", "Bedroom Light")

	cfg, err := Load(writeConfig(t, `
ble:
  name_filter: "${ACTUELD_FILTER}"
ledger:
  path: "${ACTUELD_DB:/tmp/actueld.sqlite}"
`))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.BLE.NameFilter != "Bedroom Light" {
		t.Errorf("NameFilter = %q, want env value", cfg.BLE.NameFilter)
	}
	if cfg.Ledger.Path != "/tmp/actueld.sqlite" {
		t.Errorf("Path = %q, want fallback default", cfg.Ledger.Path)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	_, err := Load(writeConfig(t, `
ble:
  scan_window: "not-a-duration"
`))
	if err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestDefaultMatchesLoadedDefaults(t *testing.T) {
	def := Default()
	loaded, err := Load(writeConfig(t, "{}"))
	if err != nil {
		t.Fatal(err)
	}

	if def.BLE != loaded.BLE || def.Geo != loaded.Geo ||
		def.Animation != loaded.Animation || def.Daylight != loaded.Daylight ||
		def.Ledger != loaded.Ledger {
		t.Error("Default() diverges from defaults applied on load")
	}
}
