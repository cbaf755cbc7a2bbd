package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.TickPeriod != time.Second/30 || cfg.TickFloor != time.Millisecond {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.NormTimeout != 10 || cfg.WaitingInfoPeriod != 0.5 {
		t.Errorf("unexpected lobby defaults %v %v", cfg.NormTimeout, cfg.WaitingInfoPeriod)
	}
	if cfg.JWTIssuer != "penfootball-server" || cfg.JWTAudience != "penfootball-frontend" {
		t.Errorf("unexpected jwt defaults %q %q", cfg.JWTIssuer, cfg.JWTAudience)
	}
	if len(cfg.Entrance) != 0 {
		t.Error("no entrance policy by default")
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
addr: ":7000"
tick:
  period: 20ms
lobby:
  norm_timeout: 3
main:
  url: http://main.local
entrance:
  - email: "@school\\.edu$"
`
	if err := os.WriteFile(filepath.Join(dir, "penfootball.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PENFOOTBALL_ADDR", ":9000")
	t.Setenv("PENFOOTBALL_LOG_LEVEL", "debug")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":9000" {
		t.Errorf("env should override the file, got %q", cfg.Addr)
	}
	if cfg.TickPeriod != 20*time.Millisecond || cfg.NormTimeout != 3 {
		t.Errorf("file values not read: %v %v", cfg.TickPeriod, cfg.NormTimeout)
	}
	if cfg.MainURL != "http://main.local" || cfg.Log.Level != "debug" {
		t.Errorf("unexpected %q %q", cfg.MainURL, cfg.Log.Level)
	}
	if !cfg.Entrance.Allows(map[string]string{"email": "x@school.edu"}) || cfg.Entrance.Allows(map[string]string{"email": "x@b.com"}) {
		t.Error("entrance policy not loaded")
	}
}

func TestLoadConfigRejectsBadPeriod(t *testing.T) {
	t.Setenv("PENFOOTBALL_TICK_PERIOD", "0s")
	if _, err := LoadConfig(); err == nil {
		t.Error("expected an error for a zero tick period")
	}
}
