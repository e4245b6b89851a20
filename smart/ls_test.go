package smart_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-git-smart/smarthttp/smart"
	"github.com/go-git-smart/smarthttp/transport"
)

func TestLsReturnsAdvertisement(t *testing.T) {
	d := &funcDoer{fn: func(req *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodGet, req.Method)
		require.Contains(t, req.URL.String(), "service=git-upload-pack")
		return resp(advertisement(t, "side-band-64k ofs-delta agent=git/x",
			[2]string{h('1'), "refs/heads/main"},
			[2]string{h('2'), "refs/heads/topic"},
		)), nil
	}}

	ar, err := smart.Ls(context.Background(), smart.LsRequest{
		Doer:         d,
		Endpoint:     transport.Endpoint{Scheme: "https", Host: "example.com"},
		Capabilities: clientCaps(t),
	})
	require.NoError(t, err)
	require.Len(t, ar.Refs, 2)
	require.Equal(t, "refs/heads/main", ar.Refs[0].Name)
}

func TestLsDefaultsToUploadPackService(t *testing.T) {
	d := &funcDoer{fn: func(req *http.Request) (*http.Response, error) {
		require.Contains(t, req.URL.String(), transport.UploadPackService)
		return resp(advertisement(t, "agent=git/x", [2]string{h('1'), "refs/heads/main"})), nil
	}}

	_, err := smart.Ls(context.Background(), smart.LsRequest{
		Doer:         d,
		Endpoint:     transport.Endpoint{Scheme: "https", Host: "example.com"},
		Capabilities: clientCaps(t),
	})
	require.NoError(t, err)
}

func TestLsNonPktlineBodySurfacesAsSyncError(t *testing.T) {
	d := &funcDoer{fn: func(req *http.Request) (*http.Response, error) {
		return resp([]byte("service not enabled\n")), nil
	}}

	_, err := smart.Ls(context.Background(), smart.LsRequest{
		Doer:         d,
		Endpoint:     transport.Endpoint{Scheme: "https", Host: "example.com"},
		Capabilities: clientCaps(t),
	})
	require.Error(t, err)

	var se *transport.SyncError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "service not enabled", se.Msg)
}
