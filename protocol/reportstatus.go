package protocol

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-git-smart/smarthttp/pktline"
)

// CommandStatus is the per-ref outcome reported after a push: Ok (empty
// Error) or the message the server rejected the update with.
type CommandStatus struct {
	Name  string
	Error string // empty means ok
}

// ReportStatus is the decoded report-status message: the overall unpack
// outcome plus one CommandStatus per command the client sent, in the
// order the server reported them.
type ReportStatus struct {
	UnpackOK    bool
	UnpackError string
	Commands    []CommandStatus
}

// ErrMissingFlush is returned when a report-status message's command
// lines are not terminated by a flush-pkt.
var ErrMissingFlush = errors.New("protocol: report-status missing terminating flush")

// DecodeReportStatus reads a report-status message: a first "unpack
// <status>" line, then one "ok <ref>" or "ng <ref> <msg>" line per
// command, terminated by a flush-pkt.
func DecodeReportStatus(r io.Reader) (*ReportStatus, error) {
	_, first, err := pktline.ReadLine(r)
	if err != nil {
		return nil, err
	}

	rs := &ReportStatus{}
	unpack, rest, ok := strings.Cut(string(first), " ")
	if !ok || unpack != "unpack" {
		return nil, fmt.Errorf("protocol: malformed unpack status line %q", first)
	}
	if rest == "ok" {
		rs.UnpackOK = true
	} else {
		rs.UnpackError = rest
	}

	flushed := false
	for {
		length, line, err := pktline.ReadLine(r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if pktline.IsFlush(length) {
			flushed = true
			break
		}

		cs, err := parseCommandStatus(line)
		if err != nil {
			return nil, err
		}
		rs.Commands = append(rs.Commands, cs)
	}

	if !flushed {
		return nil, ErrMissingFlush
	}

	return rs, nil
}

func parseCommandStatus(line []byte) (CommandStatus, error) {
	fields := bytes.SplitN(line, []byte(" "), 3)
	switch {
	case len(fields) == 2 && string(fields[0]) == "ok":
		return CommandStatus{Name: string(fields[1])}, nil
	case len(fields) == 3 && string(fields[0]) == "ng":
		return CommandStatus{Name: string(fields[1]), Error: string(fields[2])}, nil
	default:
		return CommandStatus{}, fmt.Errorf("protocol: malformed command status %q", line)
	}
}
