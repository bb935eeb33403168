package wire

import (
	"io"
	"net/http/httputil"
	"os"

	"github.com/vyrodovalexey/httpmsg/internal/message"
)

// Body block sizes.
const (
	memoryChunkSize = 1024
	fileChunkSize   = 4096
)

// renderBody writes the body of m to w and returns the number of payload
// bytes. With chunked set every block is framed as one chunk and the
// stream is closed with a zero-length chunk.
func renderBody(w io.Writer, m *message.Message, chunked bool) (int64, error) {
	switch m.Source.Kind() {
	case message.BodyFile:
		f, err := os.Open(m.Source.Path())
		if err != nil {
			return 0, err
		}
		defer func() { _ = f.Close() }()
		return renderReader(w, f, chunked)
	case message.BodyStream:
		r := m.Source.Reader()
		if r == nil {
			return renderMemory(w, nil, chunked)
		}
		return renderReader(w, r, chunked)
	default:
		return renderMemory(w, m.Body, chunked)
	}
}

func renderMemory(w io.Writer, body []byte, chunked bool) (int64, error) {
	if !chunked {
		n, err := w.Write(body)
		return int64(n), err
	}

	cw := httputil.NewChunkedWriter(w)
	var total int64
	for start := 0; start < len(body); start += memoryChunkSize {
		end := min(start+memoryChunkSize, len(body))
		n, err := cw.Write(body[start:end])
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, closeChunked(w, cw)
}

func renderReader(w io.Writer, r io.Reader, chunked bool) (int64, error) {
	var out io.Writer = w
	var cw io.WriteCloser
	if chunked {
		cw = httputil.NewChunkedWriter(w)
		out = cw
	}

	buf := make([]byte, fileChunkSize)
	var total int64
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			written, err := out.Write(buf[:n])
			total += int64(written)
			if err != nil {
				return total, err
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return total, rerr
		}
	}

	if cw != nil {
		return total, closeChunked(w, cw)
	}
	return total, nil
}

// closeChunked writes the last-chunk line and the empty trailer.
func closeChunked(w io.Writer, cw io.WriteCloser) error {
	if err := cw.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\r\n")
	return err
}
