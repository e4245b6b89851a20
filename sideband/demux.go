package sideband

import (
	"fmt"
	"io"

	"github.com/go-git-smart/smarthttp/pktline"
)

// Demuxer is an io.Reader over the pack-data channel of a side-band
// multiplexed stream. Progress and error channel payloads are never
// returned from Read: progress bytes are copied to Progress (if set, in
// emission order relative to pack data) and error bytes either go to
// Stderr (if set) or terminate the stream with an error, matching the
// Ok | Error{...} outcome the driver needs to branch on.
//
// When Type is None, Demuxer degrades to a plain passthrough of r: no
// side-band capability was negotiated, so the whole stream is pack data.
type Demuxer struct {
	typ Type
	r   io.Reader

	// Progress receives channel-2 payloads as they arrive.
	Progress io.Writer
	// Stderr receives channel-3 payloads as they arrive. If nil, the first
	// error-channel packet instead terminates Read with a non-nil error.
	Stderr io.Writer

	pending []byte // leftover pack-data bytes from a chunk larger than the caller's buffer
	err     error  // sticky terminal error (EOF, malformed frame, or channel-3 with no Stderr sink)
}

// NewDemuxer returns a Demuxer reading a side-band multiplexed stream of
// type t from r.
func NewDemuxer(t Type, r io.Reader) *Demuxer {
	return &Demuxer{typ: t, r: r}
}

func (d *Demuxer) Read(p []byte) (int, error) {
	if d.typ == None {
		return d.r.Read(p)
	}

	if len(d.pending) > 0 {
		return d.drain(p), nil
	}

	if d.err != nil {
		return 0, d.err
	}

	for {
		_, payload, err := pktline.ReadPacket(d.r)
		if err != nil {
			d.err = err
			return 0, err
		}

		if len(payload) == 0 {
			// A flush or empty line in the middle of PACK phase signals
			// the end of the multiplexed stream.
			d.err = io.EOF
			return 0, io.EOF
		}

		channel, data := payload[0], payload[1:]
		switch channel {
		case packChannel:
			if len(data) > maxPayload(d.typ) {
				d.err = ErrMaxPackedExceeded
				return 0, ErrMaxPackedExceeded
			}
			d.pending = append(d.pending[:0:0], data...) // always a fresh copy, never alias the caller's wire buffer
			return d.drain(p), nil
		case progressChannel:
			if d.Progress != nil {
				if _, werr := d.Progress.Write(data); werr != nil {
					d.err = werr
					return 0, werr
				}
			}
			continue
		case errorChannel:
			if d.Stderr != nil {
				if _, werr := d.Stderr.Write(data); werr != nil {
					d.err = werr
					return 0, werr
				}
				continue
			}
			d.err = fmt.Errorf("unexpected error: %s", data)
			return 0, d.err
		default:
			d.err = fmt.Errorf("unknown channel %d%s", channel, data)
			return 0, d.err
		}
	}
}

// drain copies as much of d.pending into p as fits, keeping the remainder
// for the next Read call (the "unconsumed suffix" requirement).
func (d *Demuxer) drain(p []byte) int {
	n := copy(p, d.pending)
	d.pending = d.pending[n:]
	return n
}
