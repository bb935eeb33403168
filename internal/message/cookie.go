package message

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/vyrodovalexey/httpmsg/internal/util"
)

// cookieExpiresLayouts lists the expiry formats accepted besides the ones
// http.ParseTime understands.
var cookieExpiresLayouts = []string{
	"Mon, 02-Jan-2006 15:04:05 MST",
	"Mon, 02-Jan-06 15:04:05 MST",
}

// Cookie is a single cookie with its Set-Cookie attributes.
type Cookie struct {
	Name     string
	Value    string
	Domain   string
	Path     string
	Expires  time.Time
	MaxAge   int // 0 means unset, negative means "max-age=0"
	Secure   bool
	HTTPOnly bool
}

// String renders the cookie in Set-Cookie form.
func (c Cookie) String() string {
	var b strings.Builder

	b.WriteString(util.Escape(c.Name))
	b.WriteByte('=')
	b.WriteString(util.Escape(c.Value))

	if !c.Expires.IsZero() {
		b.WriteString("; expires=")
		b.WriteString(c.Expires.UTC().Format(http.TimeFormat))
	}
	switch {
	case c.MaxAge > 0:
		b.WriteString("; max-age=")
		b.WriteString(strconv.Itoa(c.MaxAge))
	case c.MaxAge < 0:
		b.WriteString("; max-age=0")
	}
	if c.Domain != "" {
		b.WriteString("; domain=")
		b.WriteString(c.Domain)
	}
	if c.Path != "" {
		b.WriteString("; path=")
		b.WriteString(c.Path)
	}
	if c.Secure {
		b.WriteString("; secure")
	}
	if c.HTTPOnly {
		b.WriteString("; httpOnly")
	}

	return b.String()
}

// CookieJar holds the cookies of one message. Names are unique and
// compared case-insensitively. The zero value is ready to use.
type CookieJar struct {
	cookies map[string]Cookie
}

// Set stores c, replacing any cookie with the same name.
func (j *CookieJar) Set(c Cookie) {
	if j.cookies == nil {
		j.cookies = make(map[string]Cookie)
	}
	j.cookies[strings.ToLower(c.Name)] = c
}

// Get returns the cookie called name.
func (j *CookieJar) Get(name string) (Cookie, bool) {
	c, ok := j.cookies[strings.ToLower(name)]
	return c, ok
}

// Value returns the value of the cookie called name, or "".
func (j *CookieJar) Value(name string) string {
	return j.cookies[strings.ToLower(name)].Value
}

// Del removes the cookie called name.
func (j *CookieJar) Del(name string) {
	delete(j.cookies, strings.ToLower(name))
}

// Len returns the number of cookies.
func (j *CookieJar) Len() int {
	return len(j.cookies)
}

// Clear removes every cookie.
func (j *CookieJar) Clear() {
	j.cookies = nil
}

// Cookies returns the cookies ordered by case-folded name.
func (j *CookieJar) Cookies() []Cookie {
	keys := make([]string, 0, len(j.cookies))
	for k := range j.cookies {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Cookie, 0, len(keys))
	for _, k := range keys {
		out = append(out, j.cookies[k])
	}
	return out
}

// Clone returns an independent copy of the jar.
func (j *CookieJar) Clone() CookieJar {
	var out CookieJar
	for _, c := range j.cookies {
		out.Set(c)
	}
	return out
}

// ParseCookieHeader reads the name=value pairs of a Cookie request header.
func (j *CookieJar) ParseCookieHeader(value string) {
	for _, part := range strings.Split(value, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, val, _ := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		j.Set(Cookie{
			Name:  util.UnescapePath(name),
			Value: util.UnescapePath(strings.TrimSpace(val)),
		})
	}
}

// ParseSetCookieHeader reads one cookie and its attributes from a
// Set-Cookie response header. Unknown attributes are ignored.
func (j *CookieJar) ParseSetCookieHeader(value string) {
	parts := strings.Split(value, ";")

	name, val, _ := strings.Cut(parts[0], "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}

	c := Cookie{
		Name:  util.UnescapePath(name),
		Value: util.UnescapePath(strings.TrimSpace(val)),
	}

	for _, attr := range parts[1:] {
		key, attrValue, _ := strings.Cut(attr, "=")
		attrValue = strings.TrimSpace(attrValue)

		switch strings.ToLower(strings.TrimSpace(key)) {
		case "expires":
			if t, ok := parseCookieTime(attrValue); ok {
				c.Expires = t
			}
		case "max-age":
			if n, err := strconv.Atoi(attrValue); err == nil {
				if n <= 0 {
					n = -1
				}
				c.MaxAge = n
			}
		case "domain":
			c.Domain = attrValue
		case "path":
			c.Path = attrValue
		case "secure":
			c.Secure = true
		case "httponly":
			c.HTTPOnly = true
		}
	}

	j.Set(c)
}

func parseCookieTime(s string) (time.Time, bool) {
	if t, err := http.ParseTime(s); err == nil {
		return t, true
	}
	for _, layout := range cookieExpiresLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
