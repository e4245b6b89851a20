package remote

import "context"

// FetchSome fetches every remote reference named as a key in refmap and
// writes it to the corresponding local ref.
func FetchSome(ctx context.Context, c Client, refmap RefMap) (*FetchResult, error) {
	return fetchAndSetReferences(ctx, c, func(name string) bool {
		_, ok := refmap[name]
		return ok
	}, refmap)
}
