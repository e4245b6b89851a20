// Package smart implements the three drivers that speak the smart HTTP
// protocol end to end: Ls (discovery only), Fetch and Push. Each driver
// is a single blocking call built out of the transport, protocol,
// capability, sideband, negotiate and store packages; none of them
// retains state across calls.
package smart

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/go-git-smart/smarthttp/capability"
	"github.com/go-git-smart/smarthttp/protocol"
	"github.com/go-git-smart/smarthttp/transport"
)

// discover performs reference discovery against service and returns the
// parsed advertisement plus the negotiated capability modes.
func discover(ctx context.Context, d transport.Doer, ep transport.Endpoint, caps *capability.List, service string) (*protocol.RefAdvertisement, transport.Negotiated, error) {
	url, err := ep.DiscoveryURL(service)
	if err != nil {
		return nil, transport.Negotiated{}, err
	}

	headers, err := transport.BuildHeaders(caps, ep, service, false)
	if err != nil {
		return nil, transport.Negotiated{}, err
	}

	res, err := transport.Get(ctx, d, url, headers)
	if err != nil {
		return nil, transport.Negotiated{}, err
	}
	defer res.Body.Close() // nolint: errcheck

	// Some servers answer an unavailable or misconfigured service with a
	// plain text or HTML error page instead of a pktline advertisement.
	// Keep whatever bytes the decoder read so a parse failure can surface
	// that page's text rather than a bare decoder error.
	var raw bytes.Buffer
	ar, err := protocol.DecodeAdvRefs(transport.ResponseReader(io.TeeReader(res.Body, &raw)))
	if err != nil {
		return nil, transport.Negotiated{}, transport.NewSyncError(strings.TrimSpace(raw.String()))
	}

	return ar, transport.Negotiate(caps, ar.Capabilities), nil
}
