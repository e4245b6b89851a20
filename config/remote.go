// Package config parses the subset of gitconfig syntax needed to
// describe a remote: its name, URL and fetch refspecs.
package config

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/go-git/gcfg"
)

// RemoteConfig is one `[remote "name"]` section.
type RemoteConfig struct {
	Name  string
	URL   string
	Fetch []string
}

// ErrRemoteConfigEmptyURL is returned when a remote section has no url.
var ErrRemoteConfigEmptyURL = errors.New("config: remote has no url")

type remoteSection struct {
	URL   string   `gcfg:"url"`
	Fetch []string `gcfg:"fetch"`
}

type remoteFile struct {
	Remote map[string]*remoteSection `gcfg:"remote"`
}

// ParseRemotes parses gitconfig-style text containing one or more
// `[remote "name"]` sections and returns one RemoteConfig per section,
// defaulting Fetch to the usual "+refs/heads/*:refs/remotes/<name>/*"
// when a section declares none.
func ParseRemotes(text string) ([]*RemoteConfig, error) {
	return DecodeRemotes(strings.NewReader(text))
}

// DecodeRemotes is ParseRemotes reading from r instead of a string.
func DecodeRemotes(r io.Reader) ([]*RemoteConfig, error) {
	var raw remoteFile
	if err := gcfg.FatalOnly(gcfg.ReadInto(&raw, r)); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	names := make([]string, 0, len(raw.Remote))
	for name := range raw.Remote {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*RemoteConfig, 0, len(names))
	for _, name := range names {
		s := raw.Remote[name]
		if s.URL == "" {
			return nil, fmt.Errorf("%w: %q", ErrRemoteConfigEmptyURL, name)
		}

		fetch := s.Fetch
		if len(fetch) == 0 {
			fetch = []string{fmt.Sprintf("+refs/heads/*:refs/remotes/%s/*", name)}
		}

		out = append(out, &RemoteConfig{Name: name, URL: s.URL, Fetch: fetch})
	}

	return out, nil
}
