package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "server:\n  port: \"\"\n"))
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Server.Port != "8003" {
		t.Errorf("port = %q, want 8003", cfg.Server.Port)
	}
	if cfg.Classifier.URL != "http://localhost:8500" {
		t.Errorf("classifier url = %q", cfg.Classifier.URL)
	}
	if cfg.Classifier.TimeoutSeconds != 30 {
		t.Errorf("timeout = %d, want 30", cfg.Classifier.TimeoutSeconds)
	}
	if cfg.Pipeline.MinConfidence != 0.10 {
		t.Errorf("min confidence = %v, want 0.10", cfg.Pipeline.MinConfidence)
	}
	if cfg.Pipeline.SpeciesPenalty != 0.05 {
		t.Errorf("species penalty = %v, want 0.05", cfg.Pipeline.SpeciesPenalty)
	}
	if cfg.Pipeline.TopN != 3 {
		t.Errorf("top n = %d, want 3", cfg.Pipeline.TopN)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `server:
  port: "9000"
classifier:
  url: "http://model:9100"
  timeout_seconds: 5
pipeline:
  min_confidence: 0.2
  species_penalty: 0.1
  top_n: 5
`))
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Server.Port != "9000" {
		t.Errorf("port = %q, want 9000", cfg.Server.Port)
	}
	if cfg.Classifier.URL != "http://model:9100" {
		t.Errorf("classifier url = %q", cfg.Classifier.URL)
	}
	if cfg.Pipeline.TopN != 5 {
		t.Errorf("top n = %d, want 5", cfg.Pipeline.TopN)
	}
}

func TestLoadConfig_ExpandsEnv(t *testing.T) {
	t.Setenv("CLASSIFIER_HOST", "model.internal")

	cfg, err := LoadConfig(writeConfig(t, "classifier:\n  url: \"http://${CLASSIFIER_HOST}:8500\"\n"))
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Classifier.URL != "http://model.internal:8500" {
		t.Errorf("classifier url = %q", cfg.Classifier.URL)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
