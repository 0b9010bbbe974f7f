package config

import (
	"errors"
	"net/url"
	"strings"
)

// ErrNoPublicBaseURL is returned in live mode when no reachable public base URL is configured.
var ErrNoPublicBaseURL = errors.New("PUBLIC_BASE_URL must be set to a public URL in live mode")

// URLConfig decides which public base URL is handed to the gateway for redirects and webhooks.
type URLConfig struct {
	PublicBaseURL   string
	FallbackBaseURL string
	IsTestMode      bool
}

// ResolveBaseURL applies the precedence:
//  1. PublicBaseURL when set and not pointing at a loopback host.
//  2. In test mode, FallbackBaseURL (the gateway cannot call back into localhost).
//  3. In live mode, ErrNoPublicBaseURL.
//
// The result never has a trailing slash.
func (u URLConfig) ResolveBaseURL() (string, error) {
	public := strings.TrimRight(strings.TrimSpace(u.PublicBaseURL), "/")
	if public != "" && !IsLocalURL(public) {
		return public, nil
	}
	if !u.IsTestMode {
		return "", ErrNoPublicBaseURL
	}
	fallback := strings.TrimRight(strings.TrimSpace(u.FallbackBaseURL), "/")
	if fallback == "" {
		return "", ErrNoPublicBaseURL
	}
	return fallback, nil
}

// IsLocalURL reports whether raw points at localhost or a loopback address.
func IsLocalURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		parsed, err = url.Parse("http://" + raw)
		if err != nil {
			return false
		}
	}
	host := strings.ToLower(parsed.Hostname())
	switch {
	case host == "localhost", host == "::1", host == "0.0.0.0":
		return true
	case strings.HasPrefix(host, "127."):
		return true
	case strings.HasSuffix(host, ".localhost"):
		return true
	}
	return false
}
