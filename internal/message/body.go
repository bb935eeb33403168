package message

import "io"

// BodyKind tells the serializer where a body comes from.
type BodyKind int

// Body source kinds.
const (
	BodyMemory BodyKind = iota
	BodyFile
	BodyStream
)

// String returns the kind name.
func (k BodyKind) String() string {
	switch k {
	case BodyMemory:
		return "memory"
	case BodyFile:
		return "file"
	case BodyStream:
		return "stream"
	default:
		return "unknown"
	}
}

// BodySource selects the body renderer. A file source is opened and
// closed inside a single write; a stream source is owned by the caller.
type BodySource struct {
	kind   BodyKind
	path   string
	reader io.Reader
}

// MemoryBody renders Message.Body.
func MemoryBody() BodySource {
	return BodySource{kind: BodyMemory}
}

// FileBody streams the file at path.
func FileBody(path string) BodySource {
	return BodySource{kind: BodyFile, path: path}
}

// StreamBody copies r until EOF.
func StreamBody(r io.Reader) BodySource {
	return BodySource{kind: BodyStream, reader: r}
}

// Kind returns the source kind.
func (s BodySource) Kind() BodyKind {
	return s.kind
}

// Path returns the file path of a file source.
func (s BodySource) Path() string {
	return s.path
}

// Reader returns the reader of a stream source.
func (s BodySource) Reader() io.Reader {
	return s.reader
}
