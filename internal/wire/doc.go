// Package wire serializes message.Message values into HTTP/1.x wire
// format.
//
// Headers are written in lexicographic order with canonical
// capitalization. Responses at HTTP/1.1 without a Content-Length are
// sent with chunked transfer encoding. The body is taken from the
// message's BodySource: the in-memory Body, a file, or a caller-supplied
// reader.
//
//	resp := message.NewResponse()
//	resp.Status = 200
//	resp.Headers.Set("content-type", "text/plain")
//	resp.Body = []byte("hello")
//	if _, err := wire.Write(conn, resp); err != nil {
//	    return err
//	}
package wire
