package remote

import (
	"context"
	"fmt"

	"github.com/go-git-smart/smarthttp/internal/trace"
	"github.com/go-git-smart/smarthttp/protocol"
	"github.com/go-git-smart/smarthttp/smart"
	"github.com/go-git-smart/smarthttp/store"
)

// FetchResult is the outcome of a fetch-and-set-references orchestration
// call: the local refs that were created or moved, keyed by local ref
// name.
type FetchResult struct {
	Updated         map[string]protocol.ObjectID
	AlreadyUpToDate bool
}

// chooseFunc decides whether an advertised ref should be fetched at all.
type chooseFunc func(name string) bool

// fetchAndSetReferences runs the core Fetch driver restricted to the refs
// choose accepts, then writes every downloaded ref present in refmap into
// the local store. Advertised refs that were downloaded (because choose
// accepted them) but have no entry in refmap are logged via
// internal/trace rather than treated as an error: some choose predicates
// (fetch-all) are intentionally broader than any one static refmap.
func fetchAndSetReferences(ctx context.Context, c Client, choose chooseFunc, refmap RefMap) (*FetchResult, error) {
	haves, err := localHaves(c.Store)
	if err != nil {
		return nil, err
	}

	var downloaded []protocol.RefEntry
	res, err := smart.Fetch(ctx, smart.FetchRequest{
		Store:        c.Store,
		Doer:         c.Doer,
		Endpoint:     c.Endpoint,
		Capabilities: c.Capabilities,
		Have:         haves,
		Negotiator:   c.negotiator(),
		Want: func(advertised []protocol.RefEntry) []protocol.RefEntry {
			var wanted []protocol.RefEntry
			for _, ref := range advertised {
				if choose(ref.Name) {
					wanted = append(wanted, ref)
				}
			}
			downloaded = wanted
			return wanted
		},
	})
	if err != nil {
		return nil, err
	}
	if len(downloaded) == 0 {
		return &FetchResult{AlreadyUpToDate: true}, nil
	}

	updated := make(map[string]protocol.ObjectID, len(refmap))
	for _, ref := range downloaded {
		local, ok := refmap[ref.Name]
		if !ok {
			trace.General.Printf("remote: downloaded unrequested ref %s (pack %s)", ref.Name, res.PackID)
			continue
		}
		if err := c.Store.WriteRef(local, store.Direct(ref.ID)); err != nil {
			return nil, fmt.Errorf("remote: writing ref %s: %w", local, err)
		}
		updated[local] = ref.ID
	}

	return &FetchResult{Updated: updated, AlreadyUpToDate: len(updated) == 0}, nil
}

// localHaves reads every object id the local store already holds a ref
// for, forming the initial have-set offered during negotiation.
func localHaves(s store.Store) ([]protocol.ObjectID, error) {
	refs, err := s.ListRefs()
	if err != nil {
		return nil, err
	}
	haves := make([]protocol.ObjectID, 0, len(refs))
	for _, id := range refs {
		haves = append(haves, id)
	}
	return haves, nil
}
