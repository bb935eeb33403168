package parser

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/vyrodovalexey/httpmsg/internal/message"
	"github.com/vyrodovalexey/httpmsg/internal/observability"
	"github.com/vyrodovalexey/httpmsg/internal/util"
)

// maxChunkLine bounds the length of a chunk-size line, extensions included.
const maxChunkLine = 99

// Parser incrementally parses one HTTP message at a time.
// A Parser is not safe for concurrent use.
type Parser struct {
	logger  observability.Logger
	metrics *parserMetrics

	target *message.Message
	state  State
	err    error

	buf  []byte
	body []byte

	chunked   bool
	chunkSize int64 // -1 while a chunk-size line is expected

	sized   bool
	hasBody bool
	minBody int64
	maxBody int64
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for state transitions and failures.
func WithLogger(logger observability.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithMetrics enables or disables Prometheus metrics. Enabled by default.
func WithMetrics(enabled bool) Option {
	return func(p *Parser) {
		if enabled {
			p.metrics = getParserMetrics()
		} else {
			p.metrics = nil
		}
	}
}

// New creates a parser with no bound message.
func New(opts ...Option) *Parser {
	p := &Parser{
		logger:    observability.NopLogger(),
		metrics:   getParserMetrics(),
		chunkSize: -1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Initialize binds p to target, resets target to an empty message of
// its kind and clears all parser state.
func (p *Parser) Initialize(target *message.Message) {
	target.Reset()
	p.target = target
	p.reset()
}

func (p *Parser) reset() {
	p.state = StateStartLine
	p.err = nil
	p.buf = p.buf[:0]
	p.body = nil
	p.chunked = false
	p.chunkSize = -1
	p.sized = false
	p.hasBody = false
	p.minBody = 0
	p.maxBody = 0
}

// State returns the current parser state.
func (p *Parser) State() State {
	return p.state
}

// Feed appends data to the internal buffer and advances the parse as far
// as possible. It returns true once the message is ready to finalize.
// After a parse error every further call returns the same error.
func (p *Parser) Feed(data []byte) (bool, error) {
	if p.target == nil {
		return false, util.NewUsageError("feed", util.ErrNotReady)
	}
	if p.err != nil {
		return false, p.err
	}

	ready, err := p.feed(data)
	if err != nil {
		p.fail(err)
		return false, err
	}
	return ready, nil
}

func (p *Parser) feed(data []byte) (bool, error) {
	if p.state == StateChunkDone {
		return true, nil
	}
	p.buf = append(p.buf, data...)

	for p.state < StateBody {
		i := bytes.IndexByte(p.buf, '\n')
		if i < 0 {
			return false, nil
		}
		line := strings.TrimSuffix(string(p.buf[:i]), "\r")
		p.buf = p.buf[i+1:]

		var err error
		switch p.state {
		case StateStartLine:
			err = p.parseStartLine(line)
		case StateHeaders:
			err = p.parseHeaderLine(line)
		}
		if err != nil {
			return false, err
		}
	}

	if !p.sized {
		if err := p.resolveBodySize(); err != nil {
			return false, err
		}
	}

	if !p.chunked {
		return p.readBody(), nil
	}
	return p.readChunks()
}

func (p *Parser) parseStartLine(line string) error {
	if p.target.IsResponse() {
		if err := p.parseStatusLine(line); err != nil {
			return err
		}
	} else if err := p.parseRequestLine(line); err != nil {
		return err
	}
	p.transition(StateHeaders)
	return nil
}

func (p *Parser) parseRequestLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) < 2 || len(fields) > 3 {
		return util.NewParseError(util.ReasonTarget, "malformed request line")
	}

	m := p.target
	m.Version = message.Version09
	if len(fields) == 3 {
		v, ok := message.ParseVersion(fields[2])
		if !ok {
			return util.NewParseError(util.ReasonVersion, "malformed version "+strconv.Quote(fields[2]))
		}
		m.Version = v
	}

	u, err := message.ParseURL(fields[1])
	if err != nil {
		return util.NewParseErrorWithCause(util.ReasonTarget, "malformed request target", err)
	}
	m.Method = strings.ToUpper(fields[0])
	m.URL = u
	m.GetVars = message.ParseValues(u.Query)
	return nil
}

func (p *Parser) parseStatusLine(line string) error {
	versionToken, rest, _ := strings.Cut(line, " ")
	v, ok := message.ParseVersion(versionToken)
	if !ok {
		return util.NewParseError(util.ReasonVersion, "malformed version "+strconv.Quote(versionToken))
	}

	statusToken, text, _ := strings.Cut(strings.TrimLeft(rest, " \t"), " ")
	status, err := strconv.Atoi(statusToken)
	if err != nil || status < 0 {
		return util.NewParseError(util.ReasonStatus, "malformed status code "+strconv.Quote(statusToken))
	}

	m := p.target
	m.Version = v
	m.Status = status
	m.StatusText = strings.TrimLeft(text, " \t")
	return nil
}

func (p *Parser) parseHeaderLine(line string) error {
	if line == "" {
		p.chunked = strings.EqualFold(p.target.Headers.Get("transfer-encoding"), "chunked")
		p.transition(StateBody)
		return nil
	}

	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return util.NewParseError(util.ReasonHeader, "header line without colon")
	}
	if key == "" || strings.ContainsAny(key, " \t") {
		return util.NewParseError(util.ReasonHeader, "malformed header name "+strconv.Quote(key))
	}
	key = strings.ToLower(key)
	value = strings.TrimSpace(value)

	m := p.target
	switch {
	case key == "set-cookie" && m.IsResponse():
		m.Jar.ParseSetCookieHeader(value)
	case key == "cookie" && m.IsRequest():
		m.Jar.ParseCookieHeader(value)
	case key == "host" && m.IsRequest():
		host, port, err := message.SplitHostPort(value)
		if err != nil {
			return util.NewParseErrorWithCause(util.ReasonHeader, "malformed host header", err)
		}
		m.URL.Host = host
		m.URL.Port = port
		m.Headers.Add(key, value)
	default:
		m.Headers.Add(key, value)
	}
	return nil
}

func (p *Parser) resolveBodySize() error {
	p.sized = true
	p.minBody = 0
	p.maxBody = p.target.MaxBodySize()

	if !p.chunked {
		if raw, ok := p.target.Headers.Lookup("content-length"); ok && raw != "" {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || n < 0 {
				return util.NewParseErrorWithCause(util.ReasonLength, "malformed content-length", err)
			}
			if n > p.maxBody {
				return util.NewParseError(util.ReasonSizeLimit,
					"content-length "+raw+" exceeds limit "+strconv.FormatInt(p.maxBody, 10))
			}
			p.minBody = n
			p.maxBody = n
		}
		if p.minBody < 1 {
			p.hasBody = false
			return nil
		}
	}

	p.hasBody = p.maxBody != 0
	return nil
}

// readBody copies buffered bytes into the body up to the declared length.
// Anything past it is discarded.
func (p *Parser) readBody() bool {
	if p.hasBody {
		room := p.maxBody - int64(len(p.body))
		n := min(int64(len(p.buf)), max(room, 0))
		p.body = append(p.body, p.buf[:n]...)
	}
	p.buf = p.buf[:0]
	return p.Ready()
}

func (p *Parser) readChunks() (bool, error) {
	for len(p.buf) > 0 {
		if p.chunkSize < 0 {
			size, ok, err := p.readChunkSize()
			if err != nil || !ok {
				return false, err
			}
			if size == 0 {
				p.buf = p.buf[:0]
				p.transition(StateChunkDone)
				return true, nil
			}
			p.chunkSize = size
		}

		ok, err := p.readChunkData()
		if err != nil || !ok {
			return false, err
		}
	}
	return p.Ready(), nil
}

func (p *Parser) readChunkSize() (int64, bool, error) {
	i := bytes.IndexByte(p.buf, '\n')
	if i > maxChunkLine || (i < 0 && len(p.buf) > maxChunkLine) {
		return 0, false, util.NewParseError(util.ReasonChunk, "chunk-size line too long")
	}
	if i < 0 {
		return 0, false, nil
	}

	line := string(p.buf[:i])
	line, _, _ = strings.Cut(line, ";")
	size, err := strconv.ParseUint(strings.TrimSpace(line), 16, 63)
	if err != nil {
		return 0, false, util.NewParseErrorWithCause(util.ReasonChunk, "malformed chunk size", err)
	}
	room := max(p.maxBody-int64(len(p.body)), 0)
	if size > uint64(room) {
		return 0, false, util.NewParseError(util.ReasonSizeLimit,
			"chunked body exceeds limit "+strconv.FormatInt(p.maxBody, 10))
	}
	p.buf = p.buf[i+1:]
	return int64(size), true, nil
}

func (p *Parser) readChunkData() (bool, error) {
	if int64(len(p.buf)) <= p.chunkSize {
		return false, nil
	}

	rest := p.buf[p.chunkSize:]
	var term int
	switch {
	case rest[0] == '\n':
		term = 1
	case rest[0] == '\r' && len(rest) == 1:
		return false, nil
	case rest[0] == '\r' && rest[1] == '\n':
		term = 2
	default:
		return false, util.NewParseError(util.ReasonChunk, "chunk data not followed by line break")
	}

	p.body = append(p.body, p.buf[:p.chunkSize]...)
	p.buf = p.buf[p.chunkSize+int64(term):]
	p.chunkSize = -1
	return true, nil
}

// Ready reports whether the bound message is fully framed.
func (p *Parser) Ready() bool {
	if p.target == nil || p.err != nil {
		return false
	}
	if p.chunked {
		return p.state == StateChunkDone
	}
	if p.state < StateBody {
		return false
	}
	size := int64(len(p.body))
	return !p.hasBody || (size >= p.minBody && size <= p.maxBody)
}

// Finalize decodes form bodies into PostVars, commits the body to the
// target and releases it. The binding is released even on error.
func (p *Parser) Finalize() error {
	m := p.target
	if m == nil {
		return util.NewUsageError("finalize", util.ErrNotReady)
	}
	ready := p.Ready()
	defer func() {
		p.target = nil
		p.reset()
	}()
	if !ready {
		return util.NewUsageError("finalize", util.ErrNotReady)
	}

	ct := strings.ToLower(m.Headers.Get("content-type"))
	if strings.HasPrefix(ct, message.ContentTypeForm) {
		m.PostVars = message.ParseValues(string(p.body))
	}
	if len(p.body) > 0 {
		m.Body = bytes.Clone(p.body)
	}

	if p.metrics != nil {
		p.metrics.messages.WithLabelValues(m.Kind.String()).Inc()
		p.metrics.bodyBytes.WithLabelValues(m.Kind.String()).Observe(float64(len(p.body)))
	}
	p.logger.Debug("message finalized",
		observability.String("kind", m.Kind.String()),
		observability.Int("body_bytes", len(p.body)),
		observability.Bool("chunked", p.chunked),
	)
	return nil
}

func (p *Parser) transition(next State) {
	p.logger.Debug("parser state change",
		observability.String("from", p.state.String()),
		observability.String("to", next.String()),
	)
	p.state = next
}

func (p *Parser) fail(err error) {
	p.err = err
	reason := util.ParseReason(err)
	if p.metrics != nil {
		p.metrics.errors.WithLabelValues(reason).Inc()
	}
	p.logger.Debug("parse failed",
		observability.String("state", p.state.String()),
		observability.String("reason", reason),
		observability.Error(err),
	)
}
