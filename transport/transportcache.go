package transport

import (
	"crypto/tls"
	"net/http"
	"sync"

	"github.com/golang/groupcache/lru"
)

// TLSConfig captures the subset of per-endpoint TLS/proxy configuration
// that forces a dedicated *http.Transport instead of sharing the
// client's default one.
type TLSConfig struct {
	InsecureSkipVerify bool
	ProxyURL           string
}

func (c TLSConfig) cacheKey() TLSConfig { return c }

// transportCache hands out a *http.Transport configured for a given
// TLSConfig, reusing one across requests that share the same
// configuration instead of building a fresh one (and its connection
// pool) every call.
type transportCache struct {
	mu    sync.Mutex
	cache *lru.Cache
}

func newTransportCache(maxEntries int) *transportCache {
	if maxEntries <= 0 {
		return nil
	}
	return &transportCache{cache: lru.New(maxEntries)}
}

func (c *transportCache) get(cfg TLSConfig) (*http.Transport, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.cache.Get(cfg.cacheKey())
	if !ok {
		return nil, false
	}
	return v.(*http.Transport), true
}

func (c *transportCache) add(cfg TLSConfig, t *http.Transport) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Add(cfg.cacheKey(), t)
}

func buildTransport(base *http.Transport, cfg TLSConfig) (*http.Transport, error) {
	tr := base.Clone()
	if cfg.InsecureSkipVerify {
		if tr.TLSClientConfig == nil {
			tr.TLSClientConfig = &tls.Config{}
		}
		tr.TLSClientConfig.InsecureSkipVerify = true
	}
	if cfg.ProxyURL != "" {
		u, err := parseProxyURL(cfg.ProxyURL)
		if err != nil {
			return nil, err
		}
		tr.Proxy = http.ProxyURL(u)
	}
	return tr, nil
}
