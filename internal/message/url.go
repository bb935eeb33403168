package message

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vyrodovalexey/httpmsg/internal/util"
)

// URL is a request target split into its components. Path, Query and
// Fragment are kept exactly as received; nothing is percent-decoded.
type URL struct {
	Scheme   string
	Username string
	Password string
	Host     string
	Port     int
	Path     string
	Query    string
	Fragment string
}

// ParseURL splits an absolute URL or an origin-form target.
func ParseURL(raw string) (URL, error) {
	var u URL
	rest := raw

	if i := strings.IndexByte(rest, '#'); i >= 0 {
		u.Fragment = rest[i+1:]
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		u.Query = rest[i+1:]
		rest = rest[:i]
	}

	scheme, after, ok := strings.Cut(rest, "://")
	if !ok || !validScheme(scheme) {
		u.Path = rest
		return u, nil
	}

	u.Scheme = strings.ToLower(scheme)
	authority, path := after, "/"
	if i := strings.IndexByte(after, '/'); i >= 0 {
		authority, path = after[:i], after[i:]
	}
	u.Path = path

	if i := strings.LastIndexByte(authority, '@'); i >= 0 {
		userinfo := authority[:i]
		authority = authority[i+1:]
		user, pass, _ := strings.Cut(userinfo, ":")
		u.Username = util.UnescapePath(user)
		u.Password = util.UnescapePath(pass)
	}

	host, port, err := SplitHostPort(authority)
	if err != nil {
		return URL{}, fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	u.Host = host
	u.Port = port

	return u, nil
}

// SplitHostPort splits "host", "host:port", "[v6]" or "[v6]:port".
// The returned port is 0 when none is given.
func SplitHostPort(hostport string) (host string, port int, err error) {
	var portStr string

	switch {
	case strings.HasPrefix(hostport, "["):
		end := strings.IndexByte(hostport, ']')
		if end < 0 {
			return "", 0, fmt.Errorf("unterminated IPv6 literal %q", hostport)
		}
		host = hostport[1:end]
		rest := hostport[end+1:]
		if rest != "" {
			if rest[0] != ':' {
				return "", 0, fmt.Errorf("unexpected %q after IPv6 literal", rest)
			}
			portStr = rest[1:]
		}
	default:
		host = hostport
		if i := strings.LastIndexByte(hostport, ':'); i >= 0 {
			host, portStr = hostport[:i], hostport[i+1:]
		}
	}

	if portStr == "" {
		return host, 0, nil
	}

	port, err = strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port %q", portStr)
	}
	if err := util.ValidatePort(port); err != nil {
		return "", 0, err
	}

	return host, port, nil
}

// DefaultPort returns the well-known port of a scheme, or 0.
func DefaultPort(scheme string) int {
	switch strings.ToLower(scheme) {
	case "http", "ws":
		return 80
	case "https", "wss":
		return 443
	default:
		return 0
	}
}

// HostHeader renders the authority the way a Host header carries it.
// An IPv6 literal is always bracketed.
func (u URL) HostHeader() string {
	host := u.Host
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if u.Port != 0 && u.Port != DefaultPort(u.Scheme) {
		host += ":" + strconv.Itoa(u.Port)
	}
	return host
}

// RequestURI returns the path and query as used in a request line.
func (u URL) RequestURI() string {
	path := u.Path
	if path == "" {
		path = "/"
	}
	if u.Query != "" {
		return path + "?" + u.Query
	}
	return path
}

// String reassembles the URL.
func (u URL) String() string {
	var b strings.Builder

	if u.Scheme != "" {
		b.WriteString(u.Scheme)
		b.WriteString("://")
	}
	if u.Username != "" {
		b.WriteString(util.Escape(u.Username))
		if u.Password != "" {
			b.WriteByte(':')
			b.WriteString(util.Escape(u.Password))
		}
		b.WriteByte('@')
	}
	if u.Host != "" {
		b.WriteString(u.HostHeader())
	}
	b.WriteString(u.Path)
	if u.Query != "" {
		b.WriteByte('?')
		b.WriteString(u.Query)
	}
	if u.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.Fragment)
	}

	return b.String()
}

func validScheme(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}
