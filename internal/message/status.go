package message

import "net/http"

// StatusText returns the reason phrase for code, or "" when unknown.
func StatusText(code int) string {
	return http.StatusText(code)
}
