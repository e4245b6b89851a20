package transport

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// Doer is the HTTP client contract the smart driver depends on: given a
// fully-formed request it returns a response or an error. Tests can
// stub this directly without standing up a real HTTP server or a fake
// proxy.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DefaultClient is a net/http-backed Doer. It caches one *http.Transport
// per distinct TLSConfig it is asked to use, so repeated requests against
// endpoints sharing a TLS/proxy configuration reuse connection pools
// instead of paying a fresh dial+handshake cost every call.
type DefaultClient struct {
	base    *http.Client
	cache   *transportCache
	perHost map[string]TLSConfig // host -> last configuration requested, informational only
}

// NewDefaultClient returns a DefaultClient. base, if nil, defaults to a
// *http.Client wrapping http.DefaultTransport. cacheSize, if positive,
// enables the LRU transport cache; the cache is opt-in, matching the
// teacher's own "disabled by default" posture for this feature.
func NewDefaultClient(base *http.Client, cacheSize int) *DefaultClient {
	if base == nil {
		base = &http.Client{Transport: http.DefaultTransport}
	}
	return &DefaultClient{base: base, cache: newTransportCache(cacheSize)}
}

// Do implements Doer: the request goes out over the client's base
// transport unmodified.
func (c *DefaultClient) Do(req *http.Request) (*http.Response, error) {
	return c.base.Do(req)
}

// DoWithTLS is like Do but routes the request through a transport
// configured (and cached) for cfg. A zero cfg is sent through Do.
func (c *DefaultClient) DoWithTLS(req *http.Request, cfg TLSConfig) (*http.Response, error) {
	if cfg == (TLSConfig{}) {
		return c.Do(req)
	}

	tr, ok := c.cache.get(cfg)
	if !ok {
		base, ok := c.base.Transport.(*http.Transport)
		if !ok {
			base = http.DefaultTransport.(*http.Transport)
		}
		var err error
		tr, err = buildTransport(base, cfg)
		if err != nil {
			return nil, err
		}
		c.cache.add(cfg, tr)
	}

	client := &http.Client{
		Transport:     tr,
		CheckRedirect: c.base.CheckRedirect,
		Jar:           c.base.Jar,
		Timeout:       c.base.Timeout,
	}
	return client.Do(req)
}

func parseProxyURL(raw string) (*url.URL, error) {
	return url.Parse(raw)
}

// Get performs a GET request against rawURL with headers and returns the
// response; the caller closes its Body. An error from the Doer, context
// cancellation included, surfaces as a SyncError carrying its text.
func Get(ctx context.Context, d Doer, rawURL string, headers http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header = headers
	return doChecked(d, req)
}

// Post performs a POST request streaming body, and returns the response.
func Post(ctx context.Context, d Doer, rawURL string, headers http.Header, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, body)
	if err != nil {
		return nil, err
	}
	req.Header = headers
	return doChecked(d, req)
}

func doChecked(d Doer, req *http.Request) (*http.Response, error) {
	res, err := d.Do(req)
	if err != nil {
		return nil, NewSyncError(err.Error())
	}
	if res.StatusCode >= http.StatusOK && res.StatusCode < http.StatusMultipleChoices {
		return res, nil
	}
	return nil, checkStatus(res)
}
