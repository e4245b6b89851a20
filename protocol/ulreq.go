package protocol

import (
	"fmt"
	"io"

	"github.com/go-git-smart/smarthttp/capability"
	"github.com/go-git-smart/smarthttp/pktline"
)

// UploadRequest is the HttpUploadRequest message: the want list,
// requested capabilities, and any shallow/deepen parameters, as sent at
// the start of a fetch negotiation round.
type UploadRequest struct {
	Wants        []ObjectID
	Capabilities *capability.List
	Shallow      []ObjectID
	Depth        int // 0 means "not a shallow request"
}

// Encode writes the want lines, the first of which carries the
// capability string, followed by any shallow/deepen lines, terminated
// by a flush-pkt.
func (u *UploadRequest) Encode(w io.Writer) error {
	if len(u.Wants) == 0 {
		return fmt.Errorf("protocol: upload-request with no wants")
	}

	caps := u.Capabilities
	if caps == nil {
		caps = capability.NewList()
	}

	first := fmt.Sprintf("want %s", u.Wants[0])
	if s := caps.String(); s != "" {
		first += " " + s
	}
	if _, err := pktline.WritePacketLine(w, first); err != nil {
		return err
	}

	for _, id := range u.Wants[1:] {
		if _, err := pktline.WritePacketLine(w, fmt.Sprintf("want %s", id)); err != nil {
			return err
		}
	}

	for _, id := range u.Shallow {
		if _, err := pktline.WritePacketLine(w, fmt.Sprintf("shallow %s", id)); err != nil {
			return err
		}
	}

	if u.Depth > 0 {
		if _, err := pktline.WritePacketLine(w, fmt.Sprintf("deepen %d", u.Depth)); err != nil {
			return err
		}
	}

	return pktline.WriteFlush(w)
}
