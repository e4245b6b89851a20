// Package pktline implements git's length-prefixed packet framing used by
// the Smart HTTP transport: a 4 hex digit length header followed by that
// many bytes of payload (length counts itself), plus three zero-payload
// control packets (flush, delim, response-end).
package pktline

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrInvalidLength is returned when a length header cannot be parsed.
	ErrInvalidLength = errors.New("pktline: invalid length header")
	// ErrPayloadTooLong is returned by WritePacket for payloads above
	// MaxPayloadSize.
	ErrPayloadTooLong = errors.New("pktline: payload too long")
)

// Special packet lengths. Flush, Delim and ResponseEnd carry no payload.
const (
	Flush       = 0
	Delim       = 1
	ResponseEnd = 2
)

var (
	flushPkt = []byte("0000")
	delimPkt = []byte("0001")
	endPkt   = []byte("0002")
)

// ErrorLine is returned from ReadPacket/ReadLine when the payload is an
// error-line ("ERR <message>"), as used by some servers to report failures
// instead of a clean transport error.
type ErrorLine struct {
	Text string
}

func (e *ErrorLine) Error() string {
	return fmt.Sprintf("remote error: %s", e.Text)
}

var errPrefix = []byte("ERR ")

// WritePacket writes one pkt-line packet. An empty payload writes the
// 4-byte empty-line packet "0004" (distinct from Flush).
func WritePacket(w io.Writer, p []byte) (int, error) {
	if len(p) > MaxPayloadSize {
		return 0, ErrPayloadTooLong
	}

	n, err := w.Write(formatLength(len(p) + lenSize))
	if err != nil {
		return n, err
	}

	n2, err := w.Write(p)
	return n + n2, err
}

// WritePacketf writes a pkt-line packet built from a format string.
func WritePacketf(w io.Writer, format string, a ...any) (int, error) {
	return WritePacket(w, []byte(fmt.Sprintf(format, a...)))
}

// WritePacketLine writes s followed by a newline as a single pkt-line.
func WritePacketLine(w io.Writer, s string) (int, error) {
	return WritePacket(w, []byte(s+"\n"))
}

// WriteFlush writes the flush-pkt ("0000"), used to terminate a round of
// want/have lines or a ref advertisement.
func WriteFlush(w io.Writer) error {
	_, err := w.Write(flushPkt)
	return err
}

// WriteDelim writes the delim-pkt ("0001"), used by protocol v2.
func WriteDelim(w io.Writer) error {
	_, err := w.Write(delimPkt)
	return err
}

// WriteResponseEnd writes the response-end-pkt ("0002").
func WriteResponseEnd(w io.Writer) error {
	_, err := w.Write(endPkt)
	return err
}

// ReadPacket reads one pkt-line packet from r. length is one of
// Flush/Delim/ResponseEnd for the control packets, or the total on-wire
// length (header included) for a data packet. A data packet whose payload
// starts with "ERR " decodes to a non-nil *ErrorLine alongside its raw
// payload, so callers can still inspect the bytes for diagnostics.
func ReadPacket(r io.Reader) (length int, payload []byte, err error) {
	var hdr [lenSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, nil, fmt.Errorf("%w: truncated length header", ErrInvalidLength)
		}
		return 0, nil, err
	}

	n, err := parseLength(hdr[:])
	if err != nil {
		return 0, nil, err
	}

	switch n {
	case Flush, Delim, ResponseEnd:
		return n, nil, nil
	}

	if n < lenSize {
		return 0, nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	data := make([]byte, n-lenSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return 0, nil, err
	}

	if bytes.HasPrefix(data, errPrefix) {
		return n, data, &ErrorLine{Text: string(bytes.TrimSpace(data[len(errPrefix):]))}
	}

	return n, data, nil
}

// ReadLine is ReadPacket with the trailing newline, if any, trimmed off the
// payload.
func ReadLine(r io.Reader) (int, []byte, error) {
	n, p, err := ReadPacket(r)
	return n, bytes.TrimSuffix(p, []byte("\n")), err
}

// PeekLine reads the next pkt-line from a peeking reader without consuming
// it, so the caller can branch on its content (e.g. the "# service=" prefix
// during reference discovery) before deciding how to decode the stream.
func PeekLine(r interface{ Peek(int) ([]byte, error) }) (int, []byte, error) {
	hdr, err := r.Peek(lenSize)
	if err != nil {
		return 0, nil, err
	}

	n, err := parseLength(hdr)
	if err != nil {
		return 0, nil, err
	}

	switch n {
	case Flush, Delim, ResponseEnd:
		return n, nil, nil
	}

	buf, err := r.Peek(n)
	if err != nil {
		return 0, nil, err
	}

	return n, bytes.TrimSuffix(buf[lenSize:], []byte("\n")), nil
}

// IsFlush reports whether a length returned by ReadPacket/ReadLine/PeekLine
// denotes a flush-pkt.
func IsFlush(length int) bool {
	return length == Flush
}
