package smart

import (
	"bytes"
	"context"
	"io"

	"github.com/go-git-smart/smarthttp/capability"
	"github.com/go-git-smart/smarthttp/negotiate"
	"github.com/go-git-smart/smarthttp/protocol"
	"github.com/go-git-smart/smarthttp/store"
	"github.com/go-git-smart/smarthttp/transport"
)

// WantFunc selects which advertised refs to fetch, given the full
// advertisement. An empty return short-circuits the fetch with no
// negotiation round at all.
type WantFunc func(advertised []protocol.RefEntry) []protocol.RefEntry

// FetchRequest holds the inputs to a Fetch call.
type FetchRequest struct {
	Store        store.Store
	Doer         transport.Doer
	Endpoint     transport.Endpoint
	Capabilities *capability.List // client capabilities offered during negotiation
	Have         []protocol.ObjectID
	Want         WantFunc
	Shallow      []protocol.ObjectID
	Depth        int
	Negotiator   negotiate.Negotiator // defaults to negotiate.NewFirstCommon() if nil
	Progress     io.Writer
	Stderr       io.Writer
}

// FetchResult is the outcome of a successful Fetch: the refs selected by
// Want, and the object count the store reports for the ingested pack.
type FetchResult struct {
	Wanted      []protocol.RefEntry
	PackID      protocol.ObjectID
	ObjectCount int
}

// maxNegotiationRounds bounds the Flush-round loop so a misbehaving
// server that never ACKs anything and never says ready cannot spin the
// driver forever; negotiate.FirstCommon already gives up well before
// this, but a caller's own Negotiator might not.
const maxNegotiationRounds = 256

// Fetch runs reference discovery, capability negotiation, the have/ack
// negotiation loop and PACK ingestion, per the upload-pack half of the
// smart HTTP protocol.
func Fetch(ctx context.Context, req FetchRequest) (*FetchResult, error) {
	ar, neg, err := discover(ctx, req.Doer, req.Endpoint, req.Capabilities, transport.UploadPackService)
	if err != nil {
		return nil, err
	}

	wanted := req.Want(ar.Refs)
	if len(wanted) == 0 {
		return &FetchResult{}, nil
	}

	wantIDs := make([]protocol.ObjectID, len(wanted))
	for i, r := range wanted {
		wantIDs[i] = r.ID
	}

	mbox := newHaveMailbox(NewObjectIdSet(req.Have...))

	serviceURL, err := req.Endpoint.ServiceURL(transport.UploadPackService)
	if err != nil {
		return nil, err
	}
	headers, err := transport.BuildHeaders(req.Capabilities, req.Endpoint, transport.UploadPackService, true)
	if err != nil {
		return nil, err
	}

	if len(req.Have) == 0 {
		body, err := buildNegotiationBody(neg, wantIDs, req.Shallow, req.Depth, nil, protocol.HaveDone)
		if err != nil {
			return nil, err
		}

		res, err := transport.Post(ctx, req.Doer, serviceURL, headers, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		defer res.Body.Close() // nolint: errcheck

		br := transport.ResponseReader(res.Body)
		if _, err := protocol.DecodeNegotiationResult(br); err != nil {
			return nil, transport.NewSmartError(err, nil)
		}

		id, count, err := ingestPack(br, neg.SideBand, req.Store, req.Progress, req.Stderr)
		if err != nil {
			return nil, err
		}
		return &FetchResult{Wanted: wanted, PackID: id, ObjectCount: count}, nil
	}

	negotiator := req.Negotiator
	if negotiator == nil {
		negotiator = negotiate.NewFirstCommon()
	}

	marker := protocol.HaveFlush
	for round := 0; ; round++ {
		if round >= maxNegotiationRounds {
			return nil, transport.NewSyncError("negotiation did not converge")
		}

		haves := mbox.take()
		body, err := buildNegotiationBody(neg, wantIDs, req.Shallow, req.Depth, haves.Slice(), marker)
		mbox.put(haves)
		if err != nil {
			return nil, err
		}

		res, err := transport.Post(ctx, req.Doer, serviceURL, headers, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		br := transport.ResponseReader(res.Body)

		if marker == protocol.HaveDone {
			// Final round: this response carries the last round's acks,
			// then the NegotiationResult, then PACK, in that order.
			if _, err := protocol.DecodeAcks(br); err != nil {
				res.Body.Close() // nolint: errcheck
				return nil, transport.NewSmartError(err, nil)
			}
			if _, err := protocol.DecodeNegotiationResult(br); err != nil {
				res.Body.Close() // nolint: errcheck
				return nil, transport.NewSmartError(err, nil)
			}

			id, count, err := ingestPack(br, neg.SideBand, req.Store, req.Progress, req.Stderr)
			res.Body.Close() // nolint: errcheck
			if err != nil {
				return nil, err
			}
			return &FetchResult{Wanted: wanted, PackID: id, ObjectCount: count}, nil
		}

		acks, err := protocol.DecodeAcks(br)
		if err != nil {
			res.Body.Close() // nolint: errcheck
			return nil, transport.NewSmartError(err, nil)
		}

		decision := negotiator.Next(acks)
		switch decision.Outcome {
		case negotiate.Ready:
			// The server already said it's ready in this very response:
			// the NegotiationResult and PACK follow right here, no
			// further round trip needed.
			if _, err := protocol.DecodeNegotiationResult(br); err != nil {
				res.Body.Close() // nolint: errcheck
				return nil, transport.NewSmartError(err, nil)
			}
			id, count, err := ingestPack(br, neg.SideBand, req.Store, req.Progress, req.Stderr)
			res.Body.Close() // nolint: errcheck
			if err != nil {
				return nil, err
			}
			return &FetchResult{Wanted: wanted, PackID: id, ObjectCount: count}, nil
		case negotiate.Again:
			res.Body.Close() // nolint: errcheck
			s := mbox.take()
			s.Add(decision.AddedHaves...)
			mbox.put(s)
		case negotiate.Done:
			res.Body.Close() // nolint: errcheck
			common := commonIDs(acks)
			mbox.take()
			mbox.put(NewObjectIdSet(common...))
			marker = protocol.HaveDone
		}
	}
}

func commonIDs(acks *protocol.Acks) []protocol.ObjectID {
	out := make([]protocol.ObjectID, 0, len(acks.Acks))
	for _, a := range acks.Acks {
		out = append(out, a.ID)
	}
	return out
}

func buildNegotiationBody(neg transport.Negotiated, wants, shallow []protocol.ObjectID, depth int, haves []protocol.ObjectID, marker protocol.HaveMarker) ([]byte, error) {
	var buf bytes.Buffer

	ur := &protocol.UploadRequest{
		Wants:        wants,
		Capabilities: neg.Common,
		Shallow:      shallow,
		Depth:        depth,
	}
	if err := ur.Encode(&buf); err != nil {
		return nil, err
	}
	if err := protocol.EncodeHaves(&buf, haves, marker); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
