package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"os"
	"strings"
)

// IPExtractor resolves the client IP the rate limiter should count. The two
// implementations cover the direct-exposure case (RemoteAddr only) and the
// reverse-proxy case (forwarded headers from vetted proxies).
type IPExtractor interface {
	ExtractIP(r *http.Request) (string, error)
}

// RemoteAddrExtractor uses the TCP peer address and ignores all forwarding
// headers. This is the default: the connection address cannot be spoofed.
type RemoteAddrExtractor struct{}

func (e *RemoteAddrExtractor) ExtractIP(r *http.Request) (string, error) {
	return hostFromAddr(r.RemoteAddr)
}

// TrustedProxyConfig lists the reverse proxies whose forwarding headers may
// be believed.
type TrustedProxyConfig struct {
	Enabled      bool
	AllowedCIDRs []netip.Prefix
}

// IsTrusted reports whether remoteAddr falls inside one of the allowed
// proxy ranges.
func (c *TrustedProxyConfig) IsTrusted(remoteAddr string) bool {
	host, err := hostFromAddr(remoteAddr)
	if err != nil {
		return false
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	for _, prefix := range c.AllowedCIDRs {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// LoadTrustedProxyConfig reads RATE_LIMIT_TRUST_PROXY and
// RATE_LIMIT_TRUSTED_PROXIES (comma-separated IPs or CIDRs). Enabling trust
// without naming any proxy is a configuration error; startup should fail
// rather than silently trust nobody or everybody.
func LoadTrustedProxyConfig() (*TrustedProxyConfig, error) {
	cfg := &TrustedProxyConfig{
		Enabled: os.Getenv("RATE_LIMIT_TRUST_PROXY") == "true",
	}
	if !cfg.Enabled {
		return cfg, nil
	}

	raw := strings.TrimSpace(os.Getenv("RATE_LIMIT_TRUSTED_PROXIES"))
	if raw == "" {
		return nil, fmt.Errorf("RATE_LIMIT_TRUST_PROXY is enabled but RATE_LIMIT_TRUSTED_PROXIES is empty")
	}

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		prefix, err := netip.ParsePrefix(part)
		if err != nil {
			// Bare IPs become single-address prefixes.
			ip, ipErr := netip.ParseAddr(part)
			if ipErr != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: want an IP or CIDR", part)
			}
			bits := 32
			if !ip.Is4() {
				bits = 128
			}
			prefix = netip.PrefixFrom(ip, bits)
		}
		cfg.AllowedCIDRs = append(cfg.AllowedCIDRs, prefix)
	}

	if len(cfg.AllowedCIDRs) == 0 {
		return nil, fmt.Errorf("RATE_LIMIT_TRUST_PROXY is enabled but no valid proxies were configured")
	}
	return cfg, nil
}

// TrustedProxyExtractor believes X-Forwarded-For (first hop) and X-Real-IP
// only when the TCP peer is a listed proxy. Headers from anyone else are
// logged and ignored, which closes the obvious limiter-bypass of rotating a
// forged client address.
type TrustedProxyExtractor struct {
	config TrustedProxyConfig
}

func NewTrustedProxyExtractor(config TrustedProxyConfig) *TrustedProxyExtractor {
	return &TrustedProxyExtractor{config: config}
}

func (e *TrustedProxyExtractor) ExtractIP(r *http.Request) (string, error) {
	if !e.config.Enabled {
		return hostFromAddr(r.RemoteAddr)
	}

	if !e.config.IsTrusted(r.RemoteAddr) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			slog.Warn("untrusted peer sent X-Forwarded-For",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_forwarded_for", xff))
		}
		return hostFromAddr(r.RemoteAddr)
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := firstForwardedIP(xff); ip != "" {
			return ip, nil
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(strings.TrimSpace(xri)); ip != nil {
			return ip.String(), nil
		}
	}
	return hostFromAddr(r.RemoteAddr)
}

// hostFromAddr strips the port from "host:port", accepting bare IPs too.
func hostFromAddr(addr string) (string, error) {
	host, _, err := net.SplitHostPort(addr)
	if err == nil {
		return host, nil
	}
	if ip := net.ParseIP(addr); ip != nil {
		return ip.String(), nil
	}
	return "", fmt.Errorf("invalid address %q", addr)
}

// firstForwardedIP returns the leftmost entry of an X-Forwarded-For list if
// it parses as an IP, otherwise "".
func firstForwardedIP(xff string) string {
	first := xff
	if i := strings.IndexByte(xff, ','); i >= 0 {
		first = xff[:i]
	}
	if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
		return ip.String()
	}
	return ""
}
