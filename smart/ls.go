package smart

import (
	"context"

	"github.com/go-git-smart/smarthttp/capability"
	"github.com/go-git-smart/smarthttp/protocol"
	"github.com/go-git-smart/smarthttp/transport"
)

// LsRequest holds the inputs to a discovery-only ls call.
type LsRequest struct {
	Doer         transport.Doer
	Endpoint     transport.Endpoint
	Capabilities *capability.List
	Service      string // transport.UploadPackService or transport.ReceivePackService
}

// Ls performs reference discovery and returns the advertisement
// unmodified: no negotiation, no PACK retrieval. This is the thin
// variant used by callers that only need to know what refs a remote
// currently has (e.g. `git ls-remote`).
func Ls(ctx context.Context, req LsRequest) (*protocol.RefAdvertisement, error) {
	service := req.Service
	if service == "" {
		service = transport.UploadPackService
	}

	ar, _, err := discover(ctx, req.Doer, req.Endpoint, req.Capabilities, service)
	return ar, err
}
