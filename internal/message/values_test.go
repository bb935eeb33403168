package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeader(t *testing.T) {
	t.Parallel()

	h := make(Header)
	h.Set("Content-Type", "text/plain")
	h.Add("X-Forwarded-For", "10.0.0.1")
	h.Add("x-forwarded-for", "10.0.0.2")

	assert.Equal(t, "text/plain", h.Get("content-type"))
	assert.Equal(t, "10.0.0.1;10.0.0.2", h.Get("X-FORWARDED-FOR"))
	assert.True(t, h.Has("CONTENT-TYPE"))
	assert.Equal(t, []string{"content-type", "x-forwarded-for"}, h.Keys())

	v, ok := h.Lookup("missing")
	assert.False(t, ok)
	assert.Empty(t, v)

	clone := h.Clone()
	h.Del("Content-Type")
	assert.False(t, h.Has("content-type"))
	assert.True(t, clone.Has("content-type"))
}

func TestParseValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       string
		expected Values
	}{
		{name: "empty", in: "", expected: Values{}},
		{name: "pairs", in: "a=1&b=2", expected: Values{"a": "1", "b": "2"}},
		{name: "encoded", in: "M=B%C3%A4%C3%A4&sp=a+b&pct=a%20b", expected: Values{"M": "Bää", "sp": "a b", "pct": "a b"}},
		{name: "no value", in: "flag&x=", expected: Values{"flag": "", "x": ""}},
		{name: "empty pairs", in: "&&a=1&", expected: Values{"a": "1"}},
		{name: "later wins", in: "a=1&a=2", expected: Values{"a": "2"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ParseValues(tt.in))
		})
	}
}

func TestValues_Encode(t *testing.T) {
	t.Parallel()

	v := Values{"tree": "apple", "hello": "world", "sp ace": "a b&c"}
	assert.Equal(t, []string{"hello", "sp ace", "tree"}, v.Keys())
	assert.Equal(t, "hello=world&sp%20ace=a%20b%26c&tree=apple", v.Encode())
	assert.Equal(t, v, ParseValues(v.Encode()))

	assert.Empty(t, Values{}.Encode())

	v.Del("tree")
	assert.False(t, v.Has("tree"))
	assert.Equal(t, "world", v.Get("hello"))
}
