package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "diskmap.yaml")

	configContent := `width: 640
height: 480
depth: 2
walker: fastwalk
box_ratio: 0.75
exclude:
  - '\.git/'
  - 'node_modules'
output: json
`

	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Width != 640 || cfg.Height != 480 {
		t.Errorf("Expected 640x480, got %dx%d", cfg.Width, cfg.Height)
	}

	if cfg.Depth != 2 {
		t.Errorf("Expected depth 2, got %d", cfg.Depth)
	}

	if cfg.Walker != "fastwalk" {
		t.Errorf("Expected walker %q, got %q", "fastwalk", cfg.Walker)
	}

	if cfg.BoxRatio != 0.75 {
		t.Errorf("Expected box_ratio 0.75, got %v", cfg.BoxRatio)
	}

	expectedExclude := []string{`\.git/`, "node_modules"}
	if len(cfg.Exclude) != len(expectedExclude) {
		t.Fatalf("Expected %d exclude patterns, got %d", len(expectedExclude), len(cfg.Exclude))
	}

	for i, expected := range expectedExclude {
		if cfg.Exclude[i] != expected {
			t.Errorf("Exclude[%d]: expected %q, got %q", i, expected, cfg.Exclude[i])
		}
	}

	// keys absent from the file keep their defaults
	if cfg.LogLevel != "warn" {
		t.Errorf("Expected default log_level %q, got %q", "warn", cfg.LogLevel)
	}
}

func TestLoadConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/diskmap.yaml")
	if err != nil {
		t.Fatalf("LoadConfig should return default config for nonexistent file, got error: %v", err)
	}

	def := DefaultConfig()
	if cfg.Width != def.Width || cfg.Height != def.Height || cfg.Depth != def.Depth {
		t.Errorf("Expected defaults %+v, got %+v", def, cfg)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := "width: [1200\nheight: 800\n"

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("LoadConfig should return error for invalid YAML")
	}
}

func TestLoadConfig_EmptyConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "empty.yaml")

	if err := os.WriteFile(configPath, []byte(""), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed for empty config: %v", err)
	}

	if cfg.Exclude == nil {
		t.Error("Exclude should not be nil")
	}

	if cfg.Output != "table" {
		t.Errorf("Expected default output %q, got %q", "table", cfg.Output)
	}
}

func TestLoadConfig_RejectsNegativeDepth(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "negative.yaml")

	if err := os.WriteFile(configPath, []byte("depth: -1\n"), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("LoadConfig should reject a negative depth")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}

	if cfg.Exclude == nil {
		t.Error("Default config Exclude should not be nil")
	}

	if cfg.BoxRatio != 0.5 {
		t.Errorf("Expected default box_ratio 0.5, got %v", cfg.BoxRatio)
	}
}
