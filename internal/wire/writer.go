package wire

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/vyrodovalexey/httpmsg/internal/message"
	"github.com/vyrodovalexey/httpmsg/internal/util"
)

// Write serializes m to w and returns the number of bytes written.
// Nothing is written when m has an unsupported version or a response
// carries a transfer-encoding other than chunked without a content-length.
func Write(w io.Writer, m *message.Message) (int64, error) {
	head, chunked, err := encodeHead(m)
	if err != nil {
		return 0, err
	}

	cw := &countingWriter{w: w}
	if _, err := cw.Write(head); err != nil {
		return cw.n, err
	}
	if _, err := renderBody(cw, m, chunked); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// Bytes returns the serialized form of m.
func Bytes(m *message.Message) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Write(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// String returns the serialized form of m.
func String(m *message.Message) (string, error) {
	b, err := Bytes(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// encodeHead renders the start line, headers and the blank line. It also
// reports whether the body must be sent chunked.
func encodeHead(m *message.Message) ([]byte, bool, error) {
	version, err := m.Version.Text()
	if err != nil {
		return nil, false, err
	}

	var b bytes.Buffer
	if m.IsResponse() {
		b.WriteString("HTTP/" + version + " " + strconv.Itoa(m.Status) + " " + m.Reason())
	} else {
		// The query always comes from GetVars, never from the raw URL.
		target := message.URL{Path: m.URL.Path, Query: m.GetVars.Encode()}
		b.WriteString(m.Method + " " + target.RequestURI() + " HTTP/" + version)
	}
	b.WriteString("\r\n")

	chunked, err := useChunked(m)
	if err != nil {
		return nil, false, err
	}

	headers := outgoingHeaders(m, chunked)
	cookieSent := false
	for _, key := range headers.Keys() {
		name := CanonicalHeaderKey(key)
		if name == "Cookie" || name == "Set-Cookie" {
			cookieSent = true
		}
		b.WriteString(name + ": " + headers[key] + "\r\n")
	}

	if m.Version > message.Version09 && !cookieSent && m.Jar.Len() > 0 {
		writeCookies(&b, m)
	}

	b.WriteString("\r\n")
	return b.Bytes(), chunked, nil
}

// useChunked decides the body framing. Only HTTP/1.1 responses without a
// content-length and not marked multipart are chunked. An HTTP/1.1
// message of either kind in that position may not carry a transfer-encoding
// other than chunked.
func useChunked(m *message.Message) (bool, error) {
	if m.Version <= message.Version10 {
		return false, nil
	}
	if m.Headers.Has("content-length") || m.Multipart {
		return false, nil
	}
	if te, ok := m.Headers.Lookup("transfer-encoding"); ok && !strings.EqualFold(te, "chunked") {
		return false, util.NewUsageError("write", util.ErrTransferEncoding)
	}
	return m.IsResponse(), nil
}

// outgoingHeaders returns the header set actually put on the wire.
func outgoingHeaders(m *message.Message, chunked bool) message.Header {
	h := m.Headers.Clone()

	switch {
	case m.IsResponse() || m.Version < message.Version10:
		h.Del("host")
	case !h.Has("host") && m.URL.Host != "":
		h.Set("host", m.URL.HostHeader())
	}
	if m.IsRequest() && m.Version == message.Version09 {
		h.Del("content-length")
		h.Del("transfer-encoding")
	}
	if chunked {
		h.Set("transfer-encoding", "chunked")
	}
	return h
}

func writeCookies(b *bytes.Buffer, m *message.Message) {
	cookies := m.Jar.Cookies()
	if m.IsRequest() {
		pairs := make([]string, 0, len(cookies))
		for _, c := range cookies {
			pairs = append(pairs, util.Escape(c.Name)+"="+util.Escape(c.Value))
		}
		b.WriteString("Cookie: " + strings.Join(pairs, "; ") + "\r\n")
		return
	}
	for _, c := range cookies {
		b.WriteString("Set-Cookie: " + c.String() + "\r\n")
	}
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
