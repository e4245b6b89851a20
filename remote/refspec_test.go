package remote_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-git-smart/smarthttp/remote"
)

func TestRefSpecExactMatch(t *testing.T) {
	rs, err := remote.ParseRefSpec("refs/heads/main:refs/remotes/origin/main")
	require.NoError(t, err)
	require.True(t, rs.Match("refs/heads/main"))
	require.False(t, rs.Match("refs/heads/other"))
	require.Equal(t, "refs/remotes/origin/main", rs.Dst("refs/heads/main"))
	require.False(t, rs.IsForceUpdate())
}

func TestRefSpecWildcardMatch(t *testing.T) {
	rs, err := remote.ParseRefSpec("+refs/heads/*:refs/remotes/origin/*")
	require.NoError(t, err)
	require.True(t, rs.IsForceUpdate())
	require.True(t, rs.Match("refs/heads/feature/x"))
	require.Equal(t, "refs/remotes/origin/feature/x", rs.Dst("refs/heads/feature/x"))
	require.False(t, rs.Match("refs/tags/v1"))
}

func TestRefSpecMalformed(t *testing.T) {
	_, err := remote.ParseRefSpec("refs/heads/main")
	require.ErrorIs(t, err, remote.ErrRefSpecMalformed)

	_, err = remote.ParseRefSpec("refs/heads/*:refs/remotes/origin/fixed")
	require.ErrorIs(t, err, remote.ErrRefSpecMalformed)
}

func TestExpandRefSpecs(t *testing.T) {
	rs, err := remote.ParseRefSpec("+refs/heads/*:refs/remotes/origin/*")
	require.NoError(t, err)

	m := remote.ExpandRefSpecs([]remote.RefSpec{rs}, []string{
		"refs/heads/main",
		"refs/heads/dev",
		"refs/tags/v1",
	})
	require.Equal(t, remote.RefMap{
		"refs/heads/main": "refs/remotes/origin/main",
		"refs/heads/dev":  "refs/remotes/origin/dev",
	}, m)
}
