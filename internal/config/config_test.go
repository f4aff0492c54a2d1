package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ANALYTICS_TIMEZONE", "")
	t.Setenv("DB_AUTO_MIGRATE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Analytics.Timezone != "UTC" {
		t.Errorf("Expected default timezone UTC, got %s", cfg.Analytics.Timezone)
	}
	if !cfg.Database.AutoMigrate {
		t.Error("Expected migrations to run by default")
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("LOG_FILE", "/tmp/dashboard.log")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("Expected 5s shutdown timeout, got %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Database.MaxOpenConns != 7 {
		t.Errorf("Expected 7 max open conns, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Database.AutoMigrate {
		t.Error("Expected auto-migrate disabled")
	}
	if cfg.Log.File != "/tmp/dashboard.log" {
		t.Errorf("Expected log file path, got %s", cfg.Log.File)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080"},
			Database:  DatabaseConfig{Host: "localhost", Name: "comments"},
			Analytics: AnalyticsConfig{Timezone: "UTC"},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("Expected valid config, got %v", err)
	}

	cfg := valid()
	cfg.Database.Host = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for missing DB host")
	}

	cfg = valid()
	cfg.Server.Port = "http"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for non-numeric port")
	}

	cfg = valid()
	cfg.Analytics.Timezone = "Mars/Olympus_Mons"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for unknown timezone")
	}
}

func TestAnalyticsLocation(t *testing.T) {
	a := AnalyticsConfig{Timezone: "Europe/Berlin"}
	loc, err := a.Location()
	if err != nil {
		t.Fatalf("Location failed: %v", err)
	}
	if loc.String() != "Europe/Berlin" {
		t.Errorf("Expected Europe/Berlin, got %s", loc.String())
	}

	empty := AnalyticsConfig{}
	loc, err = empty.Location()
	if err != nil || loc != time.UTC {
		t.Errorf("Expected UTC for empty timezone, got %v %v", loc, err)
	}
}
