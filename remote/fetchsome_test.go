package remote_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-git-smart/smarthttp/remote"
	"github.com/go-git-smart/smarthttp/store"
	"github.com/go-git-smart/smarthttp/transport"
)

func TestFetchSomeWritesOnlyMappedRefs(t *testing.T) {
	pack := nakThenPack(t, fakePack(t, 2))

	d := &funcDoer{fn: func(req *http.Request) (*http.Response, error) {
		if req.Method == http.MethodGet {
			return resp(advertisement(t, "agent=git/x",
				[2]string{h('1'), "refs/heads/main"},
				[2]string{h('2'), "refs/heads/dev"},
				[2]string{h('3'), "refs/heads/wip"})), nil
		}
		return resp(pack), nil
	}}

	st := store.NewMemoryFileStore()
	refmap := remote.RefMap{
		"refs/heads/main": "refs/remotes/origin/main",
		"refs/heads/dev":  "refs/remotes/origin/dev",
	}
	res, err := remote.FetchSome(context.Background(), remote.Client{
		Doer:         d,
		Endpoint:     transport.Endpoint{Scheme: "https", Host: "example.com"},
		Capabilities: clientCaps(t),
		Store:        st,
	}, refmap)
	require.NoError(t, err)
	require.Len(t, res.Updated, 2)

	_, err = st.ReadRef("refs/remotes/origin/wip")
	require.ErrorIs(t, err, store.ErrRefNotFound)
}
