package util

import (
	"net/url"
	"strings"
)

// Escape percent-encodes s so that only unreserved characters
// (ALPHA, DIGIT, "-", ".", "_", "~") stay literal. A space becomes %20.
func Escape(s string) string {
	// QueryEscape already escapes a literal '+', so every '+' left in its
	// output stands for a space.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// EscapePath escapes each "/"-delimited component of s and rejoins them
// with literal slashes.
func EscapePath(s string) string {
	parts := strings.Split(s, "/")
	for i, p := range parts {
		parts[i] = Escape(p)
	}
	return strings.Join(parts, "/")
}

// Unescape decodes a form or query component. '+' decodes to a space.
// Malformed escapes are returned verbatim.
func Unescape(s string) string {
	v, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return v
}

// UnescapePath decodes a path component. '+' stays literal.
// Malformed escapes are returned verbatim.
func UnescapePath(s string) string {
	v, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return v
}
