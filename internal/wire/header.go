package wire

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CanonicalHeaderKey capitalizes each hyphen-delimited word of key,
// e.g. "content-type" becomes "Content-Type".
func CanonicalHeaderKey(key string) string {
	caser := cases.Title(language.Und)
	words := strings.Split(key, "-")
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, "-")
}
