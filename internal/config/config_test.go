package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 0
	cfg.DBPath = ""
	cfg.Network.DNSTimeout = "soon"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
}

func TestValidateTables(t *testing.T) {
	dir := t.TempDir()
	exclude := filepath.Join(dir, "exclude.csv")
	parents := filepath.Join(dir, "parents.csv")
	for _, p := range []string{exclude, parents} {
		if err := os.WriteFile(p, []byte("agency.gov\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := DefaultConfig()
	cfg.Tables.Exclude = exclude
	cfg.Tables.Parents = parents
	if err := cfg.ValidateTables(); err != nil {
		t.Errorf("existing tables should validate: %v", err)
	}

	cfg.Tables.Parents = filepath.Join(dir, "missing.csv")
	if err := cfg.ValidateTables(); err == nil {
		t.Error("missing parents table must be fatal")
	}

	cfg.Tables.Exclude = ""
	if err := cfg.ValidateTables(); err == nil {
		t.Error("empty table path must be fatal")
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subsift.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workers != 1 || cfg.DBPath != "subsift.db" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Tools.Pa11y.Standard != "WCAG2AA" {
		t.Errorf("pa11y standard = %q", cfg.Tools.Pa11y.Standard)
	}
}

func TestDuration(t *testing.T) {
	if got := Duration("", 5*time.Second); got != 5*time.Second {
		t.Errorf("empty value should fall back, got %v", got)
	}
	if got := Duration("2m", time.Second); got != 2*time.Minute {
		t.Errorf("Duration(2m) = %v", got)
	}
	if got := Duration("junk", time.Second); got != time.Second {
		t.Errorf("invalid value should fall back, got %v", got)
	}
}
