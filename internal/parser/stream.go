package parser

import (
	"errors"
	"io"

	"github.com/vyrodovalexey/httpmsg/internal/message"
	"github.com/vyrodovalexey/httpmsg/internal/util"
)

// ReadBlockSize is the size of the reads ReadMessage issues.
const ReadBlockSize = 1024

// ReadMessage parses one message from r into target using p. It reads in
// ReadBlockSize blocks until the message is ready and then finalizes it.
// Reaching EOF first is a parse error.
func (p *Parser) ReadMessage(r io.Reader, target *message.Message) error {
	p.Initialize(target)
	buf := make([]byte, ReadBlockSize)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			ready, ferr := p.Feed(buf[:n])
			if ferr != nil {
				p.target = nil
				return ferr
			}
			if ready {
				return p.Finalize()
			}
		}

		switch {
		case errors.Is(err, io.EOF):
			if p.Ready() {
				return p.Finalize()
			}
			p.target = nil
			perr := util.NewParseErrorWithCause(util.ReasonIncomplete, "unexpected end of input", io.ErrUnexpectedEOF)
			p.fail(perr)
			return perr
		case err != nil:
			p.target = nil
			return err
		}
	}
}

// ReadMessage parses one message from r into target with a fresh parser.
func ReadMessage(r io.Reader, target *message.Message, opts ...Option) error {
	return New(opts...).ReadMessage(r, target)
}
