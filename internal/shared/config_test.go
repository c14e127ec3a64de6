package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Catalog.BaseURL != "http://localhost:8000" {
		t.Errorf("unexpected default base_url: %s", config.Catalog.BaseURL)
	}
	if config.Catalog.SearchRate != 3.0 {
		t.Errorf("unexpected default search_rate: %v", config.Catalog.SearchRate)
	}
	if config.Order.ReservedPrefix != "+5358" {
		t.Errorf("unexpected default reserved_prefix: %s", config.Order.ReservedPrefix)
	}
	if config.Server.Port != 8765 {
		t.Errorf("unexpected default server port: %d", config.Server.Port)
	}
	if config.Database.Path != "songorder.db" {
		t.Errorf("unexpected default database path: %s", config.Database.Path)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("Valid File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[catalog]
base_url = "http://catalog.test:9000"
timeout_seconds = 5

[order]
reserved_prefix = "+5359"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.Catalog.BaseURL != "http://catalog.test:9000" {
			t.Errorf("base_url not loaded: %s", config.Catalog.BaseURL)
		}
		if config.Order.ReservedPrefix != "+5359" {
			t.Errorf("reserved_prefix not loaded: %s", config.Order.ReservedPrefix)
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
		if !errors.Is(err, ErrMissingConfig) {
			t.Fatalf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("Invalid TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestCreateConfigFile(t *testing.T) {
	t.Run("Creates From Template", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("created config should load: %v", err)
		}
		if config.Catalog.BaseURL == "" {
			t.Error("created config is missing defaults")
		}
	})

	t.Run("Refuses To Overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Fatal("expected error when config already exists")
		}
	})
}
