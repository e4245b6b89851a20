// Package sideband demultiplexes the PACK-phase byte stream into its three
// wire channels: pack data, progress messages and error messages.
package sideband

import "errors"

// Type identifies which side-band capability is in effect, which in turn
// fixes the maximum packet size the server is allowed to use.
type Type int

const (
	// None means no side-band multiplexing: the whole stream is pack data.
	None Type = iota
	// Sideband is the side-band capability (max 1000 byte packets).
	Sideband
	// Sideband64k is the side-band-64k capability (max 65520 byte packets).
	Sideband64k
)

// channel tags, as the first byte of every side-band payload.
const (
	packChannel     = 1
	progressChannel = 2
	errorChannel    = 3
)

// MaxPackedSize is the largest data payload (after the channel byte) the
// Demuxer accepts from a single side-band-64k packet: the 65520 packet
// limit minus the channel byte only, the 4 byte pkt-line length header
// not subtracted. Plain side-band is limited to 999 the same way.
const MaxPackedSize = 65519

// ErrMaxPackedExceeded is returned when a packet's payload is larger than
// the negotiated side-band mode allows.
var ErrMaxPackedExceeded = errors.New("sideband: max packet size exceeded")

func maxPayload(t Type) int {
	if t == Sideband64k {
		return MaxPackedSize
	}
	return 999
}
