package pktline

import "io"

// Scanner reads a sequence of pkt-lines, stopping at (but consuming) the
// first flush-pkt. It mirrors bufio.Scanner's Scan/Bytes/Err shape so
// callers can range over a pkt-line stream the same way they would range
// over lines of text.
type Scanner struct {
	r       io.Reader
	payload []byte
	length  int
	err     error
	done    bool
}

// NewScanner returns a Scanner reading pkt-lines from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: r}
}

// Scan advances to the next pkt-line. It returns false at the first
// flush-pkt, on error, or at EOF.
func (s *Scanner) Scan() bool {
	if s.done || s.err != nil {
		return false
	}

	length, payload, err := ReadPacket(s.r)
	if err != nil {
		var el *ErrorLine
		if !asErrorLine(err, &el) {
			s.err = err
			return false
		}
		// ErrorLine still carries a payload worth surfacing to the caller.
		s.length, s.payload = length, payload
		s.err = err
		return true
	}

	s.length, s.payload = length, payload
	if IsFlush(length) {
		s.done = true
		return false
	}

	return true
}

func asErrorLine(err error, target **ErrorLine) bool {
	el, ok := err.(*ErrorLine)
	if ok {
		*target = el
	}
	return ok
}

// Bytes returns the payload of the most recently scanned pkt-line.
func (s *Scanner) Bytes() []byte {
	return s.payload
}

// Err returns the first non-ErrorLine error encountered by Scan, if any.
func (s *Scanner) Err() error {
	if _, ok := s.err.(*ErrorLine); ok {
		return nil
	}
	return s.err
}
