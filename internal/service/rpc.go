package service

import (
	"net"
	"net/url"
	"strings"
)

// RPCDraft is the custom RPC field on the advanced settings screen.
type RPCDraft struct {
	URL       string
	Validated bool
	Message   string
}

// Edit replaces the text and clears any earlier verdict.
func (d RPCDraft) Edit(text string) RPCDraft {
	return RPCDraft{URL: text}
}

// IsPrivateHost reports whether host is loopback, a private address or
// localhost. Plain http is only allowed for such hosts.
func IsPrivateHost(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast()
}

// ValidateRPCURL returns the normalized endpoint for raw. A private host
// given without a scheme is accepted as http. Public hosts must use https.
// Input that names another scheme, such as ftp://, is invalid.
func ValidateRPCURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, ok := parseWebURI(raw)
	if !ok {
		// An explicit non-web scheme is never rescued by prefixing.
		if strings.Contains(raw, "://") {
			return "", newError(RPCInvalidURL, nil)
		}
		prefixed, ok := parseWebURI("http://" + raw)
		if !ok {
			return "", newError(RPCInvalidURL, nil)
		}
		if !IsPrivateHost(prefixed.Hostname()) {
			return "", newError(RPCInsecureScheme, nil)
		}
		u = prefixed
	}
	if !IsPrivateHost(u.Hostname()) {
		if u.Scheme == "http" {
			return "", newError(RPCInsecureScheme, nil)
		}
		u.Scheme = "https"
	}
	return u.String(), nil
}

func parseWebURI(s string) (*url.URL, bool) {
	if s == "" || strings.ContainsAny(s, " \t\n") {
		return nil, false
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, false
	}
	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}
	if u.Hostname() == "" || u.Opaque != "" {
		return nil, false
	}
	return u, true
}
