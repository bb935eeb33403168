package message

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/vyrodovalexey/httpmsg/internal/util"
)

// PostFormat selects how PreparePost encodes POST variables.
type PostFormat int

// POST body encodings.
const (
	FormURLEncoded PostFormat = iota
	FormMultipart
)

// Content types set by PreparePost.
const (
	ContentTypeForm      = "application/x-www-form-urlencoded"
	ContentTypeMultipart = "multipart/form-data"
)

// PreparePost encodes PostVars into Body, sets the matching headers and
// turns m into a POST request.
func (m *Message) PreparePost(format PostFormat) {
	var buf bytes.Buffer

	switch format {
	case FormMultipart:
		boundary := m.Boundary()
		m.Headers.Set("content-type", ContentTypeMultipart+"; boundary="+boundary)
		m.Multipart = true
		for _, key := range m.PostVars.Keys() {
			value := m.PostVars[key]
			fmt.Fprintf(&buf, "--%s\r\nContent-Disposition: form-data; name=\"%s\"; charset=UTF-8\r\nContent-Length: %d\r\n\r\n%s\r\n",
				boundary, util.Escape(key), len(value), value)
		}
		buf.WriteString("--")
	default:
		buf.WriteString(m.PostVars.Encode())
		m.Headers.Set("content-type", ContentTypeForm+"; charset=utf-8")
	}

	m.Body = buf.Bytes()
	m.Method = "POST"
	if !m.Multipart {
		m.Headers.Set("content-length", strconv.Itoa(len(m.Body)))
	}
}

// Boundary returns the multipart boundary PreparePost will use. With
// WithRandomBoundary each call yields a new token absent from PostVars.
func (m *Message) Boundary() string {
	if !m.randomBoundary {
		if m.boundary == "" {
			return DefaultBoundary
		}
		return m.boundary
	}

	for {
		candidate := "httpmsg-" + uuid.NewString()
		if !m.postVarsContain(candidate) {
			return candidate
		}
	}
}

func (m *Message) postVarsContain(s string) bool {
	for k, v := range m.PostVars {
		if strings.Contains(k, s) || strings.Contains(v, s) {
			return true
		}
	}
	return false
}
