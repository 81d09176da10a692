package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Backend.BaseURL != "http://localhost:8080" {
			t.Errorf("expected backend URL http://localhost:8080, got %s", config.Backend.BaseURL)
		}

		if config.Catalog.Country != "JP" {
			t.Errorf("expected catalog country JP, got %s", config.Catalog.Country)
		}

		if config.Catalog.Limit != 10 {
			t.Errorf("expected catalog limit 10, got %d", config.Catalog.Limit)
		}

		if config.Database.Path != "uta.db" {
			t.Errorf("expected database path uta.db, got %s", config.Database.Path)
		}

		if config.Log.Level != "info" {
			t.Errorf("expected log level info, got %s", config.Log.Level)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[backend]
base_url = "https://karaoke.example.com"

[catalog]
country = "US"
limit = 25

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[log]
level = "debug"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Backend.BaseURL != "https://karaoke.example.com" {
			t.Errorf("expected custom backend URL, got %s", config.Backend.BaseURL)
		}
		if config.Catalog.Country != "US" {
			t.Errorf("expected country US, got %s", config.Catalog.Country)
		}
		if config.Database.MaxOpenConns != 20 {
			t.Errorf("expected max_open_conns 20, got %d", config.Database.MaxOpenConns)
		}
		if config.Log.Level != "debug" {
			t.Errorf("expected log level debug, got %s", config.Log.Level)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("LoadConfig Malformed TOML", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := os.WriteFile(configPath, []byte("not [valid toml"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected error for malformed config")
		}
	})
}

func TestDatabase(t *testing.T) {
	t.Run("In-Memory Database", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open in-memory database: %v", err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			t.Errorf("database should be reachable: %v", err)
		}
	})

	t.Run("ConfigureDatabase", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		ConfigureDatabase(db, 10, 5)

		if db.Stats().MaxOpenConnections != 10 {
			t.Errorf("expected max open connections 10, got %d", db.Stats().MaxOpenConnections)
		}
	})
}
