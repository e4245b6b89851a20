package protocol

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-git-smart/smarthttp/pktline"
)

// HaveMarker selects how a round of have lines is terminated: Flush
// means "more rounds may follow", Done means "this is the client's
// final round".
type HaveMarker int

const (
	HaveFlush HaveMarker = iota
	HaveDone
)

// EncodeHaves writes one "have <oid>" line per id, terminated by a
// flush-pkt (HaveFlush) or a "done" line (HaveDone). An empty haves list
// with HaveFlush writes only the flush-pkt.
func EncodeHaves(w io.Writer, haves []ObjectID, marker HaveMarker) error {
	for _, id := range haves {
		if _, err := pktline.WritePacketLine(w, fmt.Sprintf("have %s", id)); err != nil {
			return err
		}
	}

	if marker == HaveDone {
		_, err := pktline.WritePacketLine(w, "done")
		return err
	}
	return pktline.WriteFlush(w)
}

// AckStatus qualifies an acknowledgement under multi_ack /
// multi_ack_detailed; it is always AckPlain under plain ack mode.
type AckStatus int

const (
	AckPlain AckStatus = iota
	AckContinue
	AckCommon
	AckReady
)

// Ack is one "ACK <oid>[ status]" line.
type Ack struct {
	ID     ObjectID
	Status AckStatus
}

// Acks is the result of decoding one negotiation round: zero or more
// ACKs (possibly none, i.e. a bare NAK), plus any shallow/unshallow
// lines interleaved by the server.
type Acks struct {
	Acks      []Ack
	NAK       bool
	Shallow   []ObjectID
	Unshallow []ObjectID
}

// ErrUnexpectedMessage is returned when a negotiation response line is
// neither ACK, NAK, shallow nor unshallow.
var ErrUnexpectedMessage = errors.New("protocol: unexpected message during negotiation")

// DecodeAcks reads one flush-terminated round of ACK/NAK/shallow lines.
func DecodeAcks(r io.Reader) (*Acks, error) {
	a := &Acks{}
	for {
		_, line, err := pktline.ReadLine(r)
		if err != nil {
			return nil, err
		}
		if len(line) == 0 {
			return a, nil
		}

		switch {
		case bytes.Equal(line, []byte("NAK")):
			a.NAK = true
		case bytes.HasPrefix(line, []byte("ACK ")):
			ack, err := parseAckLine(line)
			if err != nil {
				return nil, err
			}
			a.Acks = append(a.Acks, ack)
		case bytes.HasPrefix(line, []byte("shallow ")):
			id, err := ParseObjectID(string(line[len("shallow "):]))
			if err != nil {
				return nil, err
			}
			a.Shallow = append(a.Shallow, id)
		case bytes.HasPrefix(line, []byte("unshallow ")):
			id, err := ParseObjectID(string(line[len("unshallow "):]))
			if err != nil {
				return nil, err
			}
			a.Unshallow = append(a.Unshallow, id)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnexpectedMessage, line)
		}
	}
}

func parseAckLine(line []byte) (Ack, error) {
	fields := bytes.Fields(line)
	if len(fields) < 2 {
		return Ack{}, fmt.Errorf("%w: malformed ACK line %q", ErrUnexpectedMessage, line)
	}

	id, err := ParseObjectID(string(fields[1]))
	if err != nil {
		return Ack{}, err
	}

	status := AckPlain
	if len(fields) >= 3 {
		switch string(fields[2]) {
		case "continue":
			status = AckContinue
		case "common":
			status = AckCommon
		case "ready":
			status = AckReady
		default:
			return Ack{}, fmt.Errorf("%w: unknown ack status %q", ErrUnexpectedMessage, fields[2])
		}
	}

	return Ack{ID: id, Status: status}, nil
}

// NegotiationResult is the single line that precedes the PACK stream:
// either the final ACK (the server is about to send a pack) or a NAK
// (the server has nothing in common with the client's haves, or the
// client asked for everything with Done).
type NegotiationResult struct {
	NAK bool
	Ack Ack
}

// DecodeNegotiationResult reads exactly one line, with no terminating
// flush: the PACK data (or side-band stream) follows immediately.
func DecodeNegotiationResult(r io.Reader) (*NegotiationResult, error) {
	_, line, err := pktline.ReadLine(r)
	if err != nil {
		return nil, err
	}

	if bytes.Equal(line, []byte("NAK")) {
		return &NegotiationResult{NAK: true}, nil
	}
	if bytes.HasPrefix(line, []byte("ACK ")) {
		ack, err := parseAckLine(line)
		if err != nil {
			return nil, err
		}
		return &NegotiationResult{Ack: ack}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnexpectedMessage, line)
}
