package remote

import (
	"context"
	"fmt"

	"github.com/go-git-smart/smarthttp/protocol"
	"github.com/go-git-smart/smarthttp/smart"
	"github.com/go-git-smart/smarthttp/store"
	"github.com/go-git-smart/smarthttp/transport"
)

// CloneResult reports the single ref a successful Clone wrote locally.
type CloneResult struct {
	LocalRef string
	ID       protocol.ObjectID
}

// Clone fetches exactly remoteRef, writes it to localRef and points HEAD
// at it symbolically. A fresh store has no haves, so this always runs a
// single-round negotiation (Fetch's no-have fast path).
func Clone(ctx context.Context, c Client, remoteRef, localRef string) (*CloneResult, error) {
	var matched []protocol.RefEntry

	_, err := smart.Fetch(ctx, smart.FetchRequest{
		Store:        c.Store,
		Doer:         c.Doer,
		Endpoint:     c.Endpoint,
		Capabilities: c.Capabilities,
		Negotiator:   c.negotiator(),
		Want: func(advertised []protocol.RefEntry) []protocol.RefEntry {
			for _, ref := range advertised {
				if ref.Name == remoteRef {
					matched = append(matched, ref)
				}
			}
			return matched
		},
	})
	if err != nil {
		return nil, err
	}

	if len(matched) != 1 {
		return nil, transport.NewSyncError(fmt.Sprintf("Unexpected result cloning %s: matched %d refs", remoteRef, len(matched)))
	}

	id := matched[0].ID
	if err := c.Store.WriteRef(localRef, store.Direct(id)); err != nil {
		return nil, fmt.Errorf("remote: writing ref %s: %w", localRef, err)
	}
	if err := c.Store.WriteRef(store.HeadRef, store.Symbolic(localRef)); err != nil {
		return nil, fmt.Errorf("remote: writing HEAD: %w", err)
	}

	return &CloneResult{LocalRef: localRef, ID: id}, nil
}
