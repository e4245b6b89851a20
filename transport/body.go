package transport

import (
	"bufio"
	"io"
)

// ConcatBody builds the outgoing request body for a POST that must send
// an encoded header followed by an opaque byte stream (the encoded
// upload-request or update-request, followed by the pack bytes). This is
// the Go rendition of the Producer: rather than an explicit suspended
// state with a continuation, concatenation is exactly what io.MultiReader
// already does, read in order, nothing buffered beyond what io.Copy uses
// internally.
func ConcatBody(header []byte, rest io.Reader) io.Reader {
	if rest == nil {
		return bufferReader(header)
	}
	return io.MultiReader(bufferReader(header), rest)
}

func bufferReader(b []byte) io.Reader {
	return &byteReader{b: b}
}

type byteReader struct{ b []byte }

func (r *byteReader) Read(p []byte) (int, error) {
	if len(r.b) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.b)
	r.b = r.b[n:]
	return n, nil
}

// ResponseReader wraps a response body in a single bufio.Reader for the
// lifetime of one fetch or push operation. Reusing the same *bufio.Reader
// across every decode call on that operation satisfies "preserve
// unconsumed suffix across reads" automatically: bytes the underlying
// read buffered past a decoder's needs just sit in the bufio.Reader until
// the next decode call asks for them.
func ResponseReader(body io.Reader) *bufio.Reader {
	return bufio.NewReaderSize(body, 4096)
}
