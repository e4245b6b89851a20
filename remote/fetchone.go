package remote

import "context"

// FetchOne fetches a single remote reference and writes it to localRef.
// The result is never an error purely because the ref was already up to
// date: callers distinguish that case via FetchResult.AlreadyUpToDate.
func FetchOne(ctx context.Context, c Client, remoteRef, localRef string) (*FetchResult, error) {
	refmap := RefMap{remoteRef: localRef}
	return fetchAndSetReferences(ctx, c, func(name string) bool { return name == remoteRef }, refmap)
}
