package protocol

import (
	"fmt"
	"io"

	"github.com/go-git-smart/smarthttp/capability"
	"github.com/go-git-smart/smarthttp/pktline"
)

// CommandKind identifies which of the three push command shapes a
// Command represents, derived from which of Old/New is the zero id.
type CommandKind int

const (
	CommandUpdate CommandKind = iota
	CommandCreate
	CommandDelete
)

// Command is one ref update requested by a push: Create (Old is zero),
// Delete (New is zero), or Update (neither is zero).
type Command struct {
	Old, New ObjectID
	Name     string
}

// Kind reports which of Create/Delete/Update c represents.
func (c Command) Kind() CommandKind {
	switch {
	case c.Old.IsZero():
		return CommandCreate
	case c.New.IsZero():
		return CommandDelete
	default:
		return CommandUpdate
	}
}

func (c Command) format() string {
	return fmt.Sprintf("%s %s %s", c.Old, c.New, c.Name)
}

// UpdateRequest is the HttpUpdateRequest message: the commands the
// client wants applied, in advertised order, with the capability string
// carried on the first command line.
type UpdateRequest struct {
	Shallow      []ObjectID
	Commands     []Command
	Capabilities *capability.List
}

// Encode writes the shallow lines (if any), then the command lines (the
// first carrying "\x00<capabilities>"), terminated by a flush-pkt. The
// pack stream itself is not written here: callers concatenate it
// separately (see transport.ConcatBody).
func (u *UpdateRequest) Encode(w io.Writer) error {
	if len(u.Commands) == 0 {
		return fmt.Errorf("protocol: update-request with no commands")
	}

	for _, id := range u.Shallow {
		if _, err := pktline.WritePacketLine(w, fmt.Sprintf("shallow %s", id)); err != nil {
			return err
		}
	}

	caps := u.Capabilities
	if caps == nil {
		caps = capability.NewList()
	}

	first := u.Commands[0].format() + "\x00" + caps.String()
	if _, err := pktline.WritePacketLine(w, first); err != nil {
		return err
	}

	for _, cmd := range u.Commands[1:] {
		if _, err := pktline.WritePacketLine(w, cmd.format()); err != nil {
			return err
		}
	}

	return pktline.WriteFlush(w)
}
