package remote_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-git-smart/smarthttp/config"
	"github.com/go-git-smart/smarthttp/remote"
)

func TestWithRemoteConfigSetsEndpointAndRefSpecs(t *testing.T) {
	rc := &config.RemoteConfig{
		Name:  "origin",
		URL:   "https://example.com:8443/repo.git",
		Fetch: []string{"+refs/heads/*:refs/remotes/origin/*"},
	}

	c, specs, err := remote.WithRemoteConfig(remote.Client{}, rc)
	require.NoError(t, err)
	require.Equal(t, "https", c.Endpoint.Scheme)
	require.Equal(t, "example.com", c.Endpoint.Host)
	require.Equal(t, 8443, c.Endpoint.Port)
	require.Equal(t, "/repo.git", c.Endpoint.Path)

	require.Len(t, specs, 1)
	require.True(t, specs[0].IsForceUpdate())
	require.True(t, specs[0].Match("refs/heads/main"))
	require.Equal(t, "refs/remotes/origin/main", specs[0].Dst("refs/heads/main"))
}

func TestWithRemoteConfigInvalidURL(t *testing.T) {
	rc := &config.RemoteConfig{Name: "origin", URL: "ssh://example.com/repo.git"}

	_, _, err := remote.WithRemoteConfig(remote.Client{}, rc)
	require.Error(t, err)
}

func TestWithRemoteConfigSkipsMalformedRefSpec(t *testing.T) {
	rc := &config.RemoteConfig{
		Name:  "origin",
		URL:   "https://example.com/repo.git",
		Fetch: []string{"not-a-refspec", "+refs/heads/*:refs/remotes/origin/*"},
	}

	_, specs, err := remote.WithRemoteConfig(remote.Client{}, rc)
	require.NoError(t, err)
	require.Len(t, specs, 1)
}
