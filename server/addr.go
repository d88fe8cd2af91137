package server

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/amonks/taskboard/internal/config"
)

// DefaultPort is used when no port is configured.
const DefaultPort = 9090

// DefaultHost is used when no host is configured.
const DefaultHost = "127.0.0.1"

// AddrEnv names the environment variable that overrides the configured address.
const AddrEnv = "TASKBOARD_ADDR"

// ResolveAddr returns the server address. An explicit addr (from a flag or
// AddrEnv) wins; otherwise the configured host and port are used.
func ResolveAddr(addr string, cfg config.Server) (string, error) {
	if strings.TrimSpace(addr) != "" {
		return normalizeAddr(addr)
	}
	host := cfg.Host
	if host == "" {
		host = DefaultHost
	}
	port := cfg.Port
	if port == 0 {
		port = DefaultPort
	}
	return net.JoinHostPort(host, strconv.Itoa(port)), nil
}

// normalizeAddr turns a bare port into a loopback address and passes URLs and
// host:port pairs through unchanged.
func normalizeAddr(addr string) (string, error) {
	trimmed := strings.TrimSpace(addr)
	if strings.Contains(trimmed, ":") {
		return trimmed, nil
	}
	port, err := strconv.Atoi(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid port %q", trimmed)
	}
	if port <= 0 || port > 65535 {
		return "", fmt.Errorf("port out of range: %d", port)
	}
	return net.JoinHostPort(DefaultHost, strconv.Itoa(port)), nil
}

// ListenAddr converts a resolved address into one a listener accepts. Clients
// may be pointed at an http or https URL; the server listens on that URL's
// host and port.
func ListenAddr(addr string) (string, error) {
	if !strings.Contains(addr, "://") {
		return addr, nil
	}
	u, err := url.Parse(addr)
	if err != nil {
		return "", fmt.Errorf("invalid address %q: %w", addr, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid address %q: unsupported scheme %q", addr, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid address %q: missing host", addr)
	}
	if u.Path != "" && u.Path != "/" {
		return "", fmt.Errorf("invalid address %q: cannot listen on a path", addr)
	}
	if u.Port() == "" {
		port := "80"
		if u.Scheme == "https" {
			port = "443"
		}
		return net.JoinHostPort(u.Hostname(), port), nil
	}
	return u.Host, nil
}
