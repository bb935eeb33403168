package message

import (
	"fmt"
	"strings"

	"github.com/vyrodovalexey/httpmsg/internal/util"
)

// Kind distinguishes requests from responses.
type Kind int

// Message kinds.
const (
	KindRequest Kind = iota + 1
	KindResponse
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindResponse:
		return "response"
	default:
		return "unknown"
	}
}

// Version is an HTTP protocol version: 9, 10 or 11.
type Version int

// Supported protocol versions.
const (
	Version09 Version = 9
	Version10 Version = 10
	Version11 Version = 11
)

// Text returns "0.9", "1.0" or "1.1".
func (v Version) Text() (string, error) {
	switch v {
	case Version09:
		return "0.9", nil
	case Version10:
		return "1.0", nil
	case Version11:
		return "1.1", nil
	default:
		return "", util.NewUnsupportedVersionError(int(v))
	}
}

// Valid reports whether v is one of the supported versions.
func (v Version) Valid() bool {
	_, err := v.Text()
	return err == nil
}

// String returns the protocol token, e.g. "HTTP/1.1".
func (v Version) String() string {
	text, err := v.Text()
	if err != nil {
		return fmt.Sprintf("HTTP/?(%d)", int(v))
	}
	return "HTTP/" + text
}

// ParseVersion maps a protocol token to a Version. Only the exact tokens
// "HTTP/0.9", "HTTP/1.0" and "HTTP/1.1" are accepted.
func ParseVersion(token string) (Version, bool) {
	switch token {
	case "HTTP/0.9":
		return Version09, true
	case "HTTP/1.0":
		return Version10, true
	case "HTTP/1.1":
		return Version11, true
	default:
		return 0, false
	}
}

// Defaults applied to new messages.
const (
	DefaultMaxRequestSize  int64 = 2 * 1024 * 1024
	DefaultMaxResponseSize int64 = 2 * 1024 * 1024
	DefaultBoundary              = "httpmsg-12ca543"
	UserAgent                    = "httpmsg/1.0"
)

// Message is an HTTP request or response.
type Message struct {
	Kind       Kind
	URL        URL
	Method     string // requests only
	Status     int    // responses only
	StatusText string // responses only
	Version    Version
	Headers    Header
	Jar        CookieJar
	GetVars    Values
	PostVars   Values

	// Params and RouteName are filled in by the router.
	Params    Values
	RouteName string

	Body      []byte
	Multipart bool // suppresses the automatic Content-Length
	Source    BodySource

	MaxRequestSize  int64
	MaxResponseSize int64

	boundary       string
	randomBoundary bool
}

// Option configures a Message.
type Option func(*Message)

// WithVersion sets the protocol version.
func WithVersion(v Version) Option {
	return func(m *Message) {
		m.Version = v
	}
}

// WithMaxRequestSize sets the request body ceiling.
func WithMaxRequestSize(n int64) Option {
	return func(m *Message) {
		m.MaxRequestSize = n
	}
}

// WithMaxResponseSize sets the response body ceiling.
func WithMaxResponseSize(n int64) Option {
	return func(m *Message) {
		m.MaxResponseSize = n
	}
}

// WithBoundary sets a fixed multipart boundary.
func WithBoundary(boundary string) Option {
	return func(m *Message) {
		m.boundary = boundary
		m.randomBoundary = false
	}
}

// WithRandomBoundary makes PreparePost pick a fresh boundary that does
// not occur in any POST variable.
func WithRandomBoundary() Option {
	return func(m *Message) {
		m.randomBoundary = true
	}
}

// WithBodySource sets where the serializer takes the body from.
func WithBodySource(src BodySource) Option {
	return func(m *Message) {
		m.Source = src
	}
}

// NewRequest creates an empty request.
func NewRequest(opts ...Option) *Message {
	return newMessage(KindRequest, opts)
}

// NewResponse creates an empty response.
func NewResponse(opts ...Option) *Message {
	return newMessage(KindResponse, opts)
}

// NewReply creates a response that inherits the URL, method, cookies and
// protocol version of base.
func NewReply(base *Message, opts ...Option) *Message {
	m := NewResponse()
	m.URL = base.URL
	m.Method = base.Method
	m.Jar = base.Jar.Clone()
	m.Version = base.Version
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func newMessage(kind Kind, opts []Option) *Message {
	m := &Message{
		Kind:            kind,
		MaxRequestSize:  DefaultMaxRequestSize,
		MaxResponseSize: DefaultMaxResponseSize,
		boundary:        DefaultBoundary,
	}
	m.Reset()
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Reset clears the message content. Kind, size limits and the boundary
// policy are kept.
func (m *Message) Reset() {
	m.URL = URL{}
	m.Method = ""
	m.Status = 0
	m.StatusText = ""
	m.Version = Version11
	m.Headers = make(Header)
	m.Jar.Clear()
	m.GetVars = make(Values)
	m.PostVars = make(Values)
	m.Params = make(Values)
	m.RouteName = ""
	m.Body = nil
	m.Multipart = false
	m.Source = MemoryBody()
	if m.boundary == "" {
		m.boundary = DefaultBoundary
	}
}

// IsRequest reports whether m is a request.
func (m *Message) IsRequest() bool {
	return m.Kind == KindRequest
}

// IsResponse reports whether m is a response.
func (m *Message) IsResponse() bool {
	return m.Kind == KindResponse
}

// MaxBodySize returns the body ceiling that applies to m's kind.
func (m *Message) MaxBodySize() int64 {
	if m.Kind == KindResponse {
		return m.MaxResponseSize
	}
	return m.MaxRequestSize
}

// Setup prepares a client request: parses rawURL, decodes its query into
// GetVars, sets the Host and User-Agent headers and upper-cases the method.
func (m *Message) Setup(method, rawURL string) error {
	u, err := ParseURL(rawURL)
	if err != nil {
		return err
	}
	m.URL = u
	m.GetVars = ParseValues(u.Query)
	m.Headers.Set("host", u.HostHeader())
	m.Headers.Set("user-agent", UserAgent)
	m.Method = strings.ToUpper(method)
	return nil
}

// Reason returns StatusText, or the standard reason phrase of Status
// when no explicit text is set.
func (m *Message) Reason() string {
	if m.StatusText != "" {
		return m.StatusText
	}
	return StatusText(m.Status)
}
