package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalHeaderKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "content-type", want: "Content-Type"},
		{in: "host", want: "Host"},
		{in: "x-forwarded-for", want: "X-Forwarded-For"},
		{in: "www-authenticate", want: "Www-Authenticate"},
		{in: "set-cookie", want: "Set-Cookie"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalHeaderKey(tt.in), tt.in)
	}
}
