package remote

import "context"

// FetchAll fetches every advertised reference, regardless of refmap, and
// writes the ones refmap names to their local ref. Advertised refs with
// no refmap entry are still downloaded (they count towards negotiation)
// but are not written locally.
func FetchAll(ctx context.Context, c Client, refmap RefMap) (*FetchResult, error) {
	return fetchAndSetReferences(ctx, c, func(string) bool { return true }, refmap)
}
