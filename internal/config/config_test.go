package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Account.Email != "test@mulino.com" {
		t.Errorf("expected default email, got %s", cfg.Account.Email)
	}
	if cfg.Grid.StartHour != 6 || cfg.Grid.EndHour != 23 {
		t.Errorf("expected grid window 6-23, got %d-%d", cfg.Grid.StartHour, cfg.Grid.EndHour)
	}
	if cfg.Grid.SnapMinutes != 30 {
		t.Errorf("expected snap_minutes 30, got %d", cfg.Grid.SnapMinutes)
	}
	if cfg.Grid.PixelsPerHour != 60 {
		t.Errorf("expected pixels_per_hour 60, got %d", cfg.Grid.PixelsPerHour)
	}
	if cfg.UseRemote() {
		t.Error("expected local storage by default")
	}
	if cfg.Storage.DBPath == "" {
		t.Error("expected default db_path to be set")
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.Grid.SnapMinutes != 30 {
		t.Errorf("expected default snap_minutes, got %d", cfg.Grid.SnapMinutes)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[account]
email = "alice@mulino.com"

[remote]
base_url = "http://localhost:8000"

[grid]
start_hour = 8
end_hour = 20
snap_minutes = 15
pixels_per_hour = 120
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Account.Email != "alice@mulino.com" {
		t.Errorf("expected alice@mulino.com, got %s", cfg.Account.Email)
	}
	if !cfg.UseRemote() || cfg.Remote.BaseURL != "http://localhost:8000" {
		t.Errorf("expected remote base_url, got %q", cfg.Remote.BaseURL)
	}
	if cfg.Grid.StartHour != 8 || cfg.Grid.EndHour != 20 {
		t.Errorf("expected grid window 8-20, got %d-%d", cfg.Grid.StartHour, cfg.Grid.EndHour)
	}
	if cfg.Grid.SnapMinutes != 15 {
		t.Errorf("expected snap_minutes 15, got %d", cfg.Grid.SnapMinutes)
	}
	// Unset sections keep defaults
	if cfg.UI.Theme != "auto" {
		t.Errorf("expected default theme, got %s", cfg.UI.Theme)
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	if err := os.WriteFile(configPath, []byte("[grid\nbroken"), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("expected error for malformed file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FLOWSTATE_EMAIL", "bob@mulino.com")
	t.Setenv("FLOWSTATE_SNAP_MINUTES", "10")

	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Account.Email != "bob@mulino.com" {
		t.Errorf("expected env email override, got %s", cfg.Account.Email)
	}
	if cfg.Grid.SnapMinutes != 10 {
		t.Errorf("expected env snap override, got %d", cfg.Grid.SnapMinutes)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"empty email", func(c *Config) { c.Account.Email = "" }, true},
		{"not an address", func(c *Config) { c.Account.Email = "nobody" }, true},
		{"inverted window", func(c *Config) { c.Grid.StartHour = 20; c.Grid.EndHour = 8 }, true},
		{"end hour past midnight", func(c *Config) { c.Grid.EndHour = 25 }, true},
		{"snap does not divide hour", func(c *Config) { c.Grid.SnapMinutes = 25 }, true},
		{"zero snap", func(c *Config) { c.Grid.SnapMinutes = 0 }, true},
		{"negative scale", func(c *Config) { c.Grid.PixelsPerHour = -1 }, true},
		{"no backend at all", func(c *Config) { c.Storage.DBPath = "" }, true},
		{"remote without db", func(c *Config) { c.Storage.DBPath = ""; c.Remote.BaseURL = "http://x" }, false},
		{"bad theme", func(c *Config) { c.UI.Theme = "solarized" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.toml")

	cfg := Default()
	cfg.Account.Email = "carol@mulino.com"
	cfg.Grid.SnapMinutes = 15

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Account.Email != "carol@mulino.com" || loaded.Grid.SnapMinutes != 15 {
		t.Errorf("reloaded config = %+v", loaded)
	}
}
