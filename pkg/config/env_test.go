package config

import (
	"testing"
	"time"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("CFG_STR", "postgres")
	if got := GetEnvString("CFG_STR", "sqlite"); got != "postgres" {
		t.Errorf("GetEnvString = %q, want %q", got, "postgres")
	}
	if got := GetEnvString("CFG_STR_UNSET", "sqlite"); got != "sqlite" {
		t.Errorf("GetEnvString fallback = %q, want %q", got, "sqlite")
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"valid", "450", 450},
		{"garbage falls back", "many", 300},
		{"trailing text falls back", "300req", 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CFG_INT", tt.value)
			if got := GetEnvInt("CFG_INT", 300); got != tt.want {
				t.Errorf("GetEnvInt(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"1", true},
		{"FALSE", false},
		{"0", false},
		{"yes", true}, // invalid spelling falls back to the default
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("CFG_BOOL", tt.value)
			if got := GetEnvBool("CFG_BOOL", true); got != tt.want {
				t.Errorf("GetEnvBool(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("CFG_DUR", "90s")
	if got := GetEnvDuration("CFG_DUR", time.Minute); got != 90*time.Second {
		t.Errorf("GetEnvDuration = %v, want 90s", got)
	}
	t.Setenv("CFG_DUR", "soon")
	if got := GetEnvDuration("CFG_DUR", time.Minute); got != time.Minute {
		t.Errorf("GetEnvDuration fallback = %v, want 1m", got)
	}
}

func TestGetEnvStringList(t *testing.T) {
	t.Setenv("CFG_LIST", " 10.0.0.0/8 ,, 192.168.1.1 ")
	got := GetEnvStringList("CFG_LIST", nil)
	want := []string{"10.0.0.0/8", "192.168.1.1"}
	if len(got) != len(want) {
		t.Fatalf("GetEnvStringList = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}

	t.Setenv("CFG_LIST", " , ,")
	if got := GetEnvStringList("CFG_LIST", []string{"fallback"}); len(got) != 1 || got[0] != "fallback" {
		t.Errorf("all-empty list should fall back, got %v", got)
	}
}

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	cfg, err := LoadRateLimitConfig()
	if err != nil {
		t.Fatalf("LoadRateLimitConfig: %v", err)
	}
	if !cfg.Enabled || cfg.Limit != 300 || cfg.Window != time.Minute {
		t.Errorf("defaults = %+v, want enabled, 300 per 1m", cfg)
	}
}

func TestLoadRateLimitConfigRejectsBadValues(t *testing.T) {
	t.Setenv("RATELIMIT_LIMIT", "-5")
	t.Setenv("RATELIMIT_WINDOW", "-10s")

	cfg, err := LoadRateLimitConfig()
	if err != nil {
		t.Fatalf("LoadRateLimitConfig: %v", err)
	}
	if cfg.Limit != 300 {
		t.Errorf("Limit = %d, want default 300 for a negative value", cfg.Limit)
	}
	if cfg.Window != time.Minute {
		t.Errorf("Window = %v, want default 1m for a negative value", cfg.Window)
	}
}

func TestLoadCSPConfig(t *testing.T) {
	t.Setenv("CSP_ENABLED", "true")
	t.Setenv("CSP_REPORT_ONLY", "true")

	cfg, err := LoadCSPConfig()
	if err != nil {
		t.Fatalf("LoadCSPConfig: %v", err)
	}
	if !cfg.Enabled || !cfg.ReportOnly {
		t.Errorf("cfg = %+v, want enabled report-only", cfg)
	}
}
