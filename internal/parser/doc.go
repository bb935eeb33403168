// Package parser implements a push-based, resumable HTTP/1.x message
// parser.
//
// A Parser is bound to one message.Message at a time. Bytes are pushed
// with Feed in arbitrary pieces; Feed reports true once the message is
// fully framed, after which Finalize commits the body and releases the
// target:
//
//	p := parser.New(parser.WithLogger(logger))
//	req := message.NewRequest()
//	p.Initialize(req)
//	for {
//	    n, err := conn.Read(buf)
//	    ...
//	    ready, err := p.Feed(buf[:n])
//	    if err != nil {
//	        return err
//	    }
//	    if ready {
//	        break
//	    }
//	}
//	if err := p.Finalize(); err != nil {
//	    return err
//	}
//
// Feed never blocks and never spawns goroutines. Malformed input yields a
// *util.ParseError; the parse cannot continue and the parser must be
// re-initialized. ReadMessage wraps the loop above for an io.Reader.
package parser
