package router

import (
	"fmt"
	"strings"

	"github.com/vyrodovalexey/httpmsg/internal/message"
	"github.com/vyrodovalexey/httpmsg/internal/util"
)

type segmentKind int

const (
	segmentLiteral segmentKind = iota
	segmentNamed
	segmentDotted
	segmentGlob
)

// segment is one compiled "/"-delimited piece of a route pattern.
type segment struct {
	kind  segmentKind
	value string // literal text
	name  string // capture name; left-hand name for dotted segments
	ext   string // right-hand name for dotted segments
}

// compilePattern parses pattern into its segments.
func compilePattern(pattern string) ([]segment, error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, patternError(pattern, "must start with /")
	}

	parts := strings.Split(pattern[1:], "/")
	segments := make([]segment, 0, len(parts))

	for i, part := range parts {
		seg, err := compileSegment(pattern, part)
		if err != nil {
			return nil, err
		}
		if seg.kind == segmentGlob && i != len(parts)-1 {
			return nil, patternError(pattern, "glob capture must be the last segment")
		}
		segments = append(segments, seg)
	}

	seen := make(map[string]bool)
	for _, seg := range segments {
		for _, name := range seg.captures() {
			if seen[name] {
				return nil, patternError(pattern, "duplicate capture "+name)
			}
			seen[name] = true
		}
	}

	return segments, nil
}

func compileSegment(pattern, part string) (segment, error) {
	if !strings.ContainsAny(part, "<>") {
		return segment{kind: segmentLiteral, value: part}, nil
	}
	if !strings.HasPrefix(part, "<") || !strings.HasSuffix(part, ">") {
		return segment{}, patternError(pattern, "malformed placeholder "+part)
	}

	inner := part[1 : len(part)-1]
	if left, right, ok := strings.Cut(inner, ">.<"); ok {
		if !validCaptureName(left) || !validCaptureName(right) {
			return segment{}, patternError(pattern, "malformed placeholder "+part)
		}
		return segment{kind: segmentDotted, name: left, ext: right}, nil
	}

	if name, ok := strings.CutPrefix(inner, "*"); ok {
		if !validCaptureName(name) {
			return segment{}, patternError(pattern, "malformed placeholder "+part)
		}
		return segment{kind: segmentGlob, name: name}, nil
	}

	if !validCaptureName(inner) {
		return segment{}, patternError(pattern, "malformed placeholder "+part)
	}
	return segment{kind: segmentNamed, name: inner}, nil
}

func validCaptureName(name string) bool {
	return name != "" && !strings.ContainsAny(name, "<>*./")
}

func patternError(pattern, reason string) error {
	return fmt.Errorf("invalid route pattern %q: %s: %w", pattern, reason, util.ErrInvalidInput)
}

func (s segment) captures() []string {
	switch s.kind {
	case segmentNamed, segmentGlob:
		return []string{s.name}
	case segmentDotted:
		return []string{s.name, s.ext}
	default:
		return nil
	}
}

// matchSegments matches an undecoded request path. Captured values are
// percent-decoded into params.
func matchSegments(segments []segment, path string) (message.Values, bool) {
	if !strings.HasPrefix(path, "/") {
		return nil, false
	}
	parts := strings.Split(path[1:], "/")
	params := make(message.Values)

	for i, seg := range segments {
		if seg.kind == segmentGlob {
			if i >= len(parts) {
				return nil, false
			}
			rest := strings.Join(parts[i:], "/")
			if rest == "" {
				return nil, false
			}
			params[seg.name] = util.UnescapePath(rest)
			return params, true
		}
		if i >= len(parts) {
			return nil, false
		}

		part := parts[i]
		switch seg.kind {
		case segmentLiteral:
			if util.UnescapePath(part) != seg.value {
				return nil, false
			}
		case segmentNamed:
			if part == "" {
				return nil, false
			}
			params[seg.name] = util.UnescapePath(part)
		case segmentDotted:
			dot := strings.LastIndexByte(part, '.')
			if dot <= 0 || dot == len(part)-1 {
				return nil, false
			}
			params[seg.name] = util.UnescapePath(part[:dot])
			params[seg.ext] = util.UnescapePath(part[dot+1:])
		}
	}

	if len(parts) != len(segments) {
		return nil, false
	}
	return params, true
}

// buildPath renders segments with params substituted. Named captures are
// escaped whole; glob captures are escaped per "/"-delimited component.
func buildPath(route string, segments []segment, params map[string]string) (string, error) {
	parts := make([]string, 0, len(segments))

	lookup := func(name string) (string, error) {
		v, ok := params[name]
		if !ok {
			return "", util.NewMissingParameterError(route, name)
		}
		return v, nil
	}

	for _, seg := range segments {
		switch seg.kind {
		case segmentLiteral:
			parts = append(parts, seg.value)
		case segmentNamed:
			v, err := lookup(seg.name)
			if err != nil {
				return "", err
			}
			parts = append(parts, util.Escape(v))
		case segmentDotted:
			left, err := lookup(seg.name)
			if err != nil {
				return "", err
			}
			right, err := lookup(seg.ext)
			if err != nil {
				return "", err
			}
			parts = append(parts, util.Escape(left)+"."+util.Escape(right))
		case segmentGlob:
			v, err := lookup(seg.name)
			if err != nil {
				return "", err
			}
			parts = append(parts, util.EscapePath(v))
		}
	}

	return "/" + strings.Join(parts, "/"), nil
}
