package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-git-smart/smarthttp/config"
)

func TestParseRemotesBasicSection(t *testing.T) {
	remotes, err := config.ParseRemotes(`
[remote "origin"]
	url = https://example.com/repo.git
	fetch = +refs/heads/*:refs/remotes/origin/*
`)
	require.NoError(t, err)
	require.Len(t, remotes, 1)
	require.Equal(t, "origin", remotes[0].Name)
	require.Equal(t, "https://example.com/repo.git", remotes[0].URL)
	require.Equal(t, []string{"+refs/heads/*:refs/remotes/origin/*"}, remotes[0].Fetch)
}

func TestParseRemotesMultipleFetchRefspecs(t *testing.T) {
	remotes, err := config.ParseRemotes(`
[remote "origin"]
	url = https://example.com/repo.git
	fetch = +refs/heads/*:refs/remotes/origin/*
	fetch = +refs/tags/*:refs/tags/*
`)
	require.NoError(t, err)
	require.Len(t, remotes, 1)
	require.Equal(t, []string{
		"+refs/heads/*:refs/remotes/origin/*",
		"+refs/tags/*:refs/tags/*",
	}, remotes[0].Fetch)
}

func TestParseRemotesDefaultsFetchRefspec(t *testing.T) {
	remotes, err := config.ParseRemotes(`
[remote "upstream"]
	url = https://example.com/upstream.git
`)
	require.NoError(t, err)
	require.Len(t, remotes, 1)
	require.Equal(t, []string{"+refs/heads/*:refs/remotes/upstream/*"}, remotes[0].Fetch)
}

func TestParseRemotesEmptyURLErrors(t *testing.T) {
	_, err := config.ParseRemotes(`
[remote "origin"]
	fetch = +refs/heads/*:refs/remotes/origin/*
`)
	require.ErrorIs(t, err, config.ErrRemoteConfigEmptyURL)
}

func TestParseRemotesMultipleSections(t *testing.T) {
	remotes, err := config.ParseRemotes(`
[remote "origin"]
	url = https://example.com/repo.git
[remote "fork"]
	url = https://example.com/fork.git
`)
	require.NoError(t, err)
	require.Len(t, remotes, 2)

	// Remotes come back sorted by name, regardless of gcfg's map
	// iteration order or the order sections appeared in the file.
	require.Equal(t, "fork", remotes[0].Name)
	require.Equal(t, "https://example.com/fork.git", remotes[0].URL)
	require.Equal(t, "origin", remotes[1].Name)
	require.Equal(t, "https://example.com/repo.git", remotes[1].URL)
}
