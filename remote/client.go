package remote

import (
	"github.com/go-git-smart/smarthttp/capability"
	"github.com/go-git-smart/smarthttp/config"
	"github.com/go-git-smart/smarthttp/negotiate"
	"github.com/go-git-smart/smarthttp/packgen"
	"github.com/go-git-smart/smarthttp/store"
	"github.com/go-git-smart/smarthttp/transport"
)

// Client bundles everything an orchestration call needs to reach a
// single remote: the transport collaborators the Fetch/Push/Ls drivers
// take directly, plus the local store the orchestration layer reads and
// writes references against.
type Client struct {
	Doer         transport.Doer
	Endpoint     transport.Endpoint
	Capabilities *capability.List
	Store        store.Store

	// NewNegotiator builds a fresh Negotiator for one fetch call, given
	// the store it should negotiate against. Defaults to
	// negotiate.NewFirstCommon if nil.
	NewNegotiator func(store.Store) negotiate.Negotiator

	// Generator builds the pack stream for push operations.
	Generator packgen.Generator
}

func (c Client) negotiator() negotiate.Negotiator {
	if c.NewNegotiator != nil {
		return c.NewNegotiator(c.Store)
	}
	return negotiate.NewFirstCommon()
}

// WithRemoteConfig returns a copy of c pointed at rc's URL, along with the
// parsed form of rc's fetch refspecs. This is the bridge between a
// gitconfig-style [remote "name"] section and the Endpoint a Client talks
// to: rc.Fetch entries that fail to parse are skipped rather than failing
// the whole call, since a single malformed refspec shouldn't make an
// otherwise-usable remote unreachable.
func WithRemoteConfig(c Client, rc *config.RemoteConfig) (Client, []RefSpec, error) {
	ep, err := transport.NewEndpoint(rc.URL)
	if err != nil {
		return Client{}, nil, err
	}
	c.Endpoint = ep

	specs := make([]RefSpec, 0, len(rc.Fetch))
	for _, raw := range rc.Fetch {
		s, err := ParseRefSpec(raw)
		if err != nil {
			continue
		}
		specs = append(specs, s)
	}
	return c, specs, nil
}
