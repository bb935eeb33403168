// Package util provides the error kinds and small string helpers shared by
// the message, parser, wire and router packages.
//
// # Error Conventions
//
// This project follows a standardized error pattern across all packages:
//
//   - Sentinel errors (errors.New) for well-known, stable conditions
//     that callers check with errors.Is(). Example: ErrBodyTooLarge.
//   - Structured error types for context-rich errors that carry
//     additional fields (e.g., ParseError, UsageError). Each type
//     implements Error(), Unwrap() (if wrapping), and Is().
//   - fmt.Errorf with %w for ad-hoc wrapping that adds context to an
//     existing error without introducing a new type.
//
// Two families matter to callers. A ParseError means the bytes on the
// wire were malformed or oversized; the parse is lost and the parser must
// be re-initialized. A UsageError means the caller configured a message or
// asked for a route in a way that cannot be honoured.
//
// # Percent-Encoding
//
//	util.Escape("a b&c")   // "a%20b%26c"
//	util.Unescape("a+b")   // "a b"
//
// # Validation
//
//	err := util.ValidateHeaderName("X-Custom-Header")
//	err := util.ValidateHTTPMethod("PATCH")
package util
