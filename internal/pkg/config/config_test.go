package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
db_username: cafe
db_password: secret
db_host: db.local
db_name: cafeshift
access_ttl: 30m
allowed_origins:
  - https://cafe.example.com
currency: "$"
`)
	t.Setenv("CAFE_DB_HOST", "db.override")

	cfg, err := Load(path, []string{"migrate"})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBHost != "db.override" {
		t.Fatalf("DBHost = %q, env should win", cfg.DBHost)
	}
	if cfg.AccessTTL != 30*time.Minute || cfg.RefreshTTL != 7*24*time.Hour {
		t.Fatalf("ttls = %v / %v", cfg.AccessTTL, cfg.RefreshTTL)
	}
	if cfg.Addr != ":5000" || cfg.DBPort != "5432" || cfg.Currency != "$" {
		t.Fatalf("defaults = %q %q %q", cfg.Addr, cfg.DBPort, cfg.Currency)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"https://cafe.example.com"}) {
		t.Fatalf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.Args.Num(0) != "migrate" {
		t.Fatalf("Args = %v", cfg.Args)
	}
}

func TestLoadRequiresDatabase(t *testing.T) {
	path := writeFile(t, "db_username: cafe\n")

	if _, err := Load(path, nil); err == nil {
		t.Fatal("Load() without db_host and db_name succeeded")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CAFE_DB_USERNAME", "cafe")
	t.Setenv("CAFE_DB_HOST", "localhost")
	t.Setenv("CAFE_DB_NAME", "cafeshift")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Currency != "₱" || cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}
