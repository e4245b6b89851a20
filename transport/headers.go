package transport

import (
	"errors"
	"net/http"

	"dario.cat/mergo"

	"github.com/go-git-smart/smarthttp/capability"
)

// ErrInvalidCapabilities is returned when the client capability list has
// no Agent entry: the User-Agent header has nothing to derive from, which
// is a programmer error rather than something to tolerate at runtime.
var ErrInvalidCapabilities = errors.New("transport: client capabilities missing agent")

// BuildHeaders composes the headers for a request against service,
// merging caller headers (from the Endpoint) underneath the required
// ones. Required headers always win: a caller cannot override
// User-Agent or Content-Type by supplying their own value.
func BuildHeaders(caps *capability.List, ep Endpoint, service string, isPost bool) (http.Header, error) {
	agent := caps.Get(capability.Agent)
	if len(agent) == 0 {
		return nil, ErrInvalidCapabilities
	}

	required := http.Header{
		"User-Agent": []string{agent[0]},
	}
	if isPost {
		required.Set("Content-Type", "application/x-"+service+"-request")
		required.Set("Accept", "application/x-"+service+"-result")
	} else {
		required.Set("Accept", "application/x-"+service+"-advertisement")
	}

	merged := http.Header{}
	for k, v := range ep.Headers {
		merged[k] = append([]string(nil), v...)
	}

	// required overrides caller-supplied values for the same key; values
	// the caller set on keys required doesn't touch pass through untouched.
	if err := mergo.Merge(&merged, required, mergo.WithOverride); err != nil {
		return nil, err
	}

	return merged, nil
}
