package smart

import (
	"bytes"
	"context"
	"io"

	"github.com/go-git-smart/smarthttp/capability"
	"github.com/go-git-smart/smarthttp/packgen"
	"github.com/go-git-smart/smarthttp/protocol"
	"github.com/go-git-smart/smarthttp/sideband"
	"github.com/go-git-smart/smarthttp/transport"
)

// PushFunc selects the ref updates to send, given the server's
// advertised refs. An empty return short-circuits the push with no POST
// at all.
type PushFunc func(advertised []protocol.RefEntry) []protocol.Command

// PushRequest holds the inputs to a Push call.
type PushRequest struct {
	Doer         transport.Doer
	Endpoint     transport.Endpoint
	Capabilities *capability.List
	Push         PushFunc
	Generator    packgen.Generator
	Options      packgen.Options // zero value means packgen.DefaultOptions
	Shallow      []protocol.ObjectID
}

// PushResult is the outcome of a successful push: the per-command
// statuses the server reported.
type PushResult struct {
	UnpackOK bool
	Commands []protocol.CommandStatus
}

// Push runs reference discovery, pack generation and the update-request
// exchange, per the receive-pack half of the smart HTTP protocol.
func Push(ctx context.Context, req PushRequest) (*PushResult, error) {
	ar, neg, err := discover(ctx, req.Doer, req.Endpoint, req.Capabilities, transport.ReceivePackService)
	if err != nil {
		return nil, err
	}

	commands := req.Push(ar.Refs)
	if len(commands) == 0 {
		return &PushResult{}, nil
	}

	opts := req.Options
	if opts == (packgen.Options{}) {
		opts = packgen.DefaultOptions
	}

	packStream, err := req.Generator.Generate(opts, ar.Refs, commands)
	if err != nil {
		return nil, err
	}

	serviceURL, err := req.Endpoint.ServiceURL(transport.ReceivePackService)
	if err != nil {
		return nil, err
	}
	headers, err := transport.BuildHeaders(req.Capabilities, req.Endpoint, transport.ReceivePackService, true)
	if err != nil {
		return nil, err
	}

	var header bytes.Buffer
	ur := &protocol.UpdateRequest{Shallow: req.Shallow, Commands: commands, Capabilities: neg.Common}
	if err := ur.Encode(&header); err != nil {
		return nil, err
	}

	body := transport.ConcatBody(header.Bytes(), packStream)
	res, err := transport.Post(ctx, req.Doer, serviceURL, headers, body)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close() // nolint: errcheck

	br := transport.ResponseReader(res.Body)
	var statusReader io.Reader = br
	if neg.SideBand != transport.SideBandNone {
		statusReader = sideband.NewDemuxer(sidebandType(neg.SideBand), br)
	}

	rs, err := protocol.DecodeReportStatus(statusReader)
	if err != nil {
		return nil, transport.NewSmartError(err, nil)
	}
	if !rs.UnpackOK {
		return nil, transport.NewSyncError(rs.UnpackError)
	}

	return &PushResult{UnpackOK: true, Commands: rs.Commands}, nil
}
