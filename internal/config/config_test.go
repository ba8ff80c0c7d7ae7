package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"roamscope/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Server.Addr == "" {
		t.Error("Server.Addr should not be empty")
	}
	if cfg.Database.Path == "" {
		t.Error("Database.Path should not be empty")
	}
	if cfg.Analysis.HandoverThreshold != domain.DefaultHandoverThreshold {
		t.Errorf("HandoverThreshold = %f, want %f",
			cfg.Analysis.HandoverThreshold, domain.DefaultHandoverThreshold)
	}
	if cfg.Analysis.TopNetworks != 10 {
		t.Errorf("TopNetworks = %d, want 10", cfg.Analysis.TopNetworks)
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.applyDefaults()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %s, want :8080", cfg.Server.Addr)
	}
	if cfg.PiFetch.Port != 22 {
		t.Errorf("PiFetch.Port = %d, want 22", cfg.PiFetch.Port)
	}
	if cfg.Kafka.Topic == "" {
		t.Error("Kafka.Topic should have a default")
	}
}

func TestDurationDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.WatchDebounce() != 2*time.Second {
		t.Errorf("WatchDebounce() = %s, want 2s", cfg.WatchDebounce())
	}
	if cfg.PiFetchTimeout() != 30*time.Second {
		t.Errorf("PiFetchTimeout() = %s, want 30s", cfg.PiFetchTimeout())
	}

	d := Duration(5 * time.Second)
	cfg.Watch.Debounce = &d
	if cfg.WatchDebounce() != 5*time.Second {
		t.Errorf("WatchDebounce() = %s, want 5s (override)", cfg.WatchDebounce())
	}
}

func TestBaselineFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Baselines = []domain.ReferenceBaseline{
		{Floor: "ground", APs: 86, BSSIDs: 422, Networks: 30, AvgSignal: -55.3},
		{Floor: "top", APs: 74, BSSIDs: 390, Networks: 28, AvgSignal: -57.1},
	}

	b, ok := cfg.BaselineFor("top")
	if !ok {
		t.Fatal("expected baseline for top floor")
	}
	if b.BSSIDs != 390 {
		t.Errorf("BSSIDs = %d, want 390", b.BSSIDs)
	}

	if _, ok := cfg.BaselineFor("mezzanine"); ok {
		t.Error("expected no baseline for unknown floor")
	}
}

func TestSaveAndLoad(t *testing.T) {
	// Create temp directory
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// Create and save config
	cfg := DefaultConfig()
	cfg.Analysis.TargetSSID = "SLU-users"
	cfg.Watch.Enabled = true
	cfg.Watch.Dir = "/data/drop"
	cfg.Baselines = []domain.ReferenceBaseline{
		{Floor: "ground", APs: 86, BSSIDs: 422, Networks: 30, AvgSignal: -55.3},
	}

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// Load config
	loaded, path, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if path != configPath {
		t.Errorf("path = %s, want %s", path, configPath)
	}

	// Verify values
	if loaded.Analysis.TargetSSID != "SLU-users" {
		t.Errorf("TargetSSID = %s, want SLU-users", loaded.Analysis.TargetSSID)
	}
	if !loaded.Watch.Enabled || loaded.Watch.Dir != "/data/drop" {
		t.Errorf("Watch = %+v, want enabled at /data/drop", loaded.Watch)
	}
	if len(loaded.Baselines) != 1 || loaded.Baselines[0].Floor != "ground" {
		t.Errorf("Baselines = %v, want ground baseline", loaded.Baselines)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	partial := "version: 1\nanalysis:\n  target_ssid: SLU-users\n"
	if err := os.WriteFile(configPath, []byte(partial), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	loaded, _, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}

	if loaded.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %s, want default :8080", loaded.Server.Addr)
	}
	if loaded.Analysis.HandoverThreshold != domain.DefaultHandoverThreshold {
		t.Errorf("HandoverThreshold = %f, want default", loaded.Analysis.HandoverThreshold)
	}
}

func TestFindConfigPath(t *testing.T) {
	// Create temp directory with config
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	cfg := DefaultConfig()
	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// Set working directory to temp
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	// Should find config in working directory
	found := FindConfigPath()
	if found == "" {
		t.Error("FindConfigPath() should find config in working directory")
	}

	// Should prefer explicit env var
	os.Setenv(EnvConfigPath, "/nonexistent/path.yaml")
	defer os.Unsetenv(EnvConfigPath)

	// Explicit path doesn't exist, should fall back
	found = FindConfigPath()
	if found == "" {
		t.Error("FindConfigPath() should fall back when env path doesn't exist")
	}
}

func TestDuration(t *testing.T) {
	d := Duration(5 * time.Minute)

	if d.Duration() != 5*time.Minute {
		t.Errorf("Duration() = %s, want 5m", d.Duration())
	}

	// Test YAML marshaling
	marshaled, err := d.MarshalYAML()
	if err != nil {
		t.Fatalf("MarshalYAML() error: %v", err)
	}
	if marshaled != "5m0s" {
		t.Errorf("MarshalYAML() = %v, want 5m0s", marshaled)
	}
}
