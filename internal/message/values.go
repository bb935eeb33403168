package message

import (
	"sort"
	"strings"

	"github.com/vyrodovalexey/httpmsg/internal/util"
)

// Header maps lower-cased header names to values. Each name appears
// once; Add merges a repeated name into the existing value.
type Header map[string]string

// Get returns the value for key, matched case-insensitively.
func (h Header) Get(key string) string {
	return h[strings.ToLower(key)]
}

// Lookup returns the value for key and whether it is present.
func (h Header) Lookup(key string) (string, bool) {
	v, ok := h[strings.ToLower(key)]
	return v, ok
}

// Has reports whether key is present.
func (h Header) Has(key string) bool {
	_, ok := h[strings.ToLower(key)]
	return ok
}

// Set replaces the value for key.
func (h Header) Set(key, value string) {
	h[strings.ToLower(key)] = value
}

// Add stores value under key, joining it to an existing value with ";".
func (h Header) Add(key, value string) {
	key = strings.ToLower(key)
	if existing, ok := h[key]; ok {
		h[key] = existing + ";" + value
		return
	}
	h[key] = value
}

// Del removes key.
func (h Header) Del(key string) {
	delete(h, strings.ToLower(key))
}

// Keys returns the header names in lexicographic order.
func (h Header) Keys() []string {
	return sortedKeys(h)
}

// Clone returns a copy of h.
func (h Header) Clone() Header {
	out := make(Header, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// Values holds GET variables, POST variables or route parameters.
type Values map[string]string

// ParseValues decodes a query string or form-encoded body. Pairs without
// "=" get an empty value; empty pairs are skipped.
func ParseValues(s string) Values {
	v := make(Values)
	for _, pair := range strings.Split(s, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		v[util.Unescape(key)] = util.Unescape(value)
	}
	return v
}

// Get returns the value for key.
func (v Values) Get(key string) string {
	return v[key]
}

// Has reports whether key is present.
func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// Set replaces the value for key.
func (v Values) Set(key, value string) {
	v[key] = value
}

// Del removes key.
func (v Values) Del(key string) {
	delete(v, key)
}

// Keys returns the keys in lexicographic order.
func (v Values) Keys() []string {
	return sortedKeys(v)
}

// Encode renders "k=v&k2=v2" in key order with both sides percent-encoded.
func (v Values) Encode() string {
	var b strings.Builder
	for i, k := range v.Keys() {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(util.Escape(k))
		b.WriteByte('=')
		b.WriteString(util.Escape(v[k]))
	}
	return b.String()
}

func sortedKeys[M ~map[string]string](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
