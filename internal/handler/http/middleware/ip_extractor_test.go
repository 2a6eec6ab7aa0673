package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
)

func TestRemoteAddrExtractor(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		want       string
		wantErr    bool
	}{
		{"ipv4 with port", "192.168.1.1:54321", "192.168.1.1", false},
		{"ipv6 with port", "[2001:db8::1]:8080", "2001:db8::1", false},
		{"bare ipv4", "127.0.0.1", "127.0.0.1", false},
		{"garbage", "not-an-address", "", true},
	}

	e := &RemoteAddrExtractor{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/programs", nil)
			r.RemoteAddr = tt.remoteAddr

			got, err := e.ExtractIP(r)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ExtractIP(%q) succeeded, want error", tt.remoteAddr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractIP(%q) failed: %v", tt.remoteAddr, err)
			}
			if got != tt.want {
				t.Errorf("ExtractIP(%q)=%q, want %q", tt.remoteAddr, got, tt.want)
			}
		})
	}
}

func proxyConfig(t *testing.T, cidrs ...string) TrustedProxyConfig {
	t.Helper()
	cfg := TrustedProxyConfig{Enabled: true}
	for _, c := range cidrs {
		cfg.AllowedCIDRs = append(cfg.AllowedCIDRs, netip.MustParsePrefix(c))
	}
	return cfg
}

func TestTrustedProxyExtractorHonorsTrustedHeader(t *testing.T) {
	e := NewTrustedProxyExtractor(proxyConfig(t, "10.0.0.0/8"))

	r := httptest.NewRequest(http.MethodGet, "/programs", nil)
	r.RemoteAddr = "10.0.0.5:443"
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.5")

	got, err := e.ExtractIP(r)
	if err != nil {
		t.Fatalf("ExtractIP failed: %v", err)
	}
	if got != "203.0.113.7" {
		t.Errorf("ip=%q, want the forwarded client address", got)
	}
}

func TestTrustedProxyExtractorIgnoresUntrustedHeader(t *testing.T) {
	e := NewTrustedProxyExtractor(proxyConfig(t, "10.0.0.0/8"))

	r := httptest.NewRequest(http.MethodGet, "/programs", nil)
	r.RemoteAddr = "198.51.100.20:443"
	r.Header.Set("X-Forwarded-For", "203.0.113.7")

	got, err := e.ExtractIP(r)
	if err != nil {
		t.Fatalf("ExtractIP failed: %v", err)
	}
	if got != "198.51.100.20" {
		t.Errorf("ip=%q, want the TCP peer address for an untrusted proxy", got)
	}
}

func TestTrustedProxyExtractorRealIPFallback(t *testing.T) {
	e := NewTrustedProxyExtractor(proxyConfig(t, "10.0.0.0/8"))

	r := httptest.NewRequest(http.MethodGet, "/programs", nil)
	r.RemoteAddr = "10.0.0.5:443"
	r.Header.Set("X-Real-IP", "203.0.113.9")

	got, err := e.ExtractIP(r)
	if err != nil {
		t.Fatalf("ExtractIP failed: %v", err)
	}
	if got != "203.0.113.9" {
		t.Errorf("ip=%q, want X-Real-IP value", got)
	}
}

func TestTrustedProxyExtractorBadHeaderFallsBack(t *testing.T) {
	e := NewTrustedProxyExtractor(proxyConfig(t, "10.0.0.0/8"))

	r := httptest.NewRequest(http.MethodGet, "/programs", nil)
	r.RemoteAddr = "10.0.0.5:443"
	r.Header.Set("X-Forwarded-For", "not-an-ip")

	got, err := e.ExtractIP(r)
	if err != nil {
		t.Fatalf("ExtractIP failed: %v", err)
	}
	if got != "10.0.0.5" {
		t.Errorf("ip=%q, want RemoteAddr fallback", got)
	}
}

func TestLoadTrustedProxyConfig(t *testing.T) {
	t.Run("disabled by default", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_TRUST_PROXY", "")
		cfg, err := LoadTrustedProxyConfig()
		if err != nil {
			t.Fatalf("LoadTrustedProxyConfig failed: %v", err)
		}
		if cfg.Enabled {
			t.Error("proxy trust should default to disabled")
		}
	})

	t.Run("enabled without proxies fails", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_TRUST_PROXY", "true")
		t.Setenv("RATE_LIMIT_TRUSTED_PROXIES", "")
		if _, err := LoadTrustedProxyConfig(); err == nil {
			t.Fatal("want error when trust is enabled with no proxy list")
		}
	})

	t.Run("mixed IPs and CIDRs", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_TRUST_PROXY", "true")
		t.Setenv("RATE_LIMIT_TRUSTED_PROXIES", "192.168.1.1, 10.0.0.0/8, 2001:db8::/32")
		cfg, err := LoadTrustedProxyConfig()
		if err != nil {
			t.Fatalf("LoadTrustedProxyConfig failed: %v", err)
		}
		if len(cfg.AllowedCIDRs) != 3 {
			t.Fatalf("got %d prefixes, want 3", len(cfg.AllowedCIDRs))
		}
		if !cfg.IsTrusted("192.168.1.1:9000") {
			t.Error("bare IP should be trusted as a single-address prefix")
		}
		if !cfg.IsTrusted("10.3.2.1:9000") {
			t.Error("address inside CIDR should be trusted")
		}
		if cfg.IsTrusted("172.16.0.1:9000") {
			t.Error("address outside all ranges must not be trusted")
		}
	})

	t.Run("invalid entry fails", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_TRUST_PROXY", "true")
		t.Setenv("RATE_LIMIT_TRUSTED_PROXIES", "10.0.0.0/8, bogus")
		if _, err := LoadTrustedProxyConfig(); err == nil {
			t.Fatal("want error for an invalid proxy entry")
		}
	})
}
