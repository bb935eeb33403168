package parser

// State is the position of the parser in the message grammar.
type State int

// Parser states, in the order they are visited.
const (
	StateStartLine State = iota
	StateHeaders
	StateBody
	StateChunkDone
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStartLine:
		return "start_line"
	case StateHeaders:
		return "headers"
	case StateBody:
		return "body"
	case StateChunkDone:
		return "chunk_done"
	default:
		return "unknown"
	}
}
