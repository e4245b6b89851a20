// Package transport composes service URLs, builds request headers,
// derives negotiated capability modes, and provides the HTTP client
// seam the smart driver depends on.
package transport

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidEndpoint is returned when an Endpoint cannot be turned into a
// valid URL: unsupported scheme, or a missing host.
var ErrInvalidEndpoint = errors.New("transport: invalid endpoint")

// Service names, as they appear in the "service=" query parameter and as
// the POST path suffix.
const (
	UploadPackService  = "git-upload-pack"
	ReceivePackService = "git-receive-pack"
)

const infoRefsPath = "/info/refs"

// Endpoint describes the remote repository location: scheme, host,
// optional port, path and optional userinfo, plus any caller-supplied
// headers to send with every request against it.
type Endpoint struct {
	Scheme   string // "http" or "https"
	Host     string
	Port     int // 0 means "use the scheme's default port"
	Path     string
	User     string
	Password string

	// Headers carries caller-supplied headers that are merged with the
	// required headers a given request builds (see Header Builder).
	Headers map[string][]string
}

// WithPath returns a copy of e with Path replaced, preserving every other
// field including Headers. This is the Go rendition of "with_uri,
// preserving headers".
func (e Endpoint) WithPath(path string) Endpoint {
	e.Path = path
	return e
}

func (e Endpoint) validate() error {
	if e.Scheme != "http" && e.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidEndpoint, e.Scheme)
	}
	if e.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidEndpoint)
	}
	return nil
}

func (e Endpoint) hostport() string {
	if e.Port == 0 {
		return e.Host
	}
	return e.Host + ":" + strconv.Itoa(e.Port)
}

func (e Endpoint) base() string {
	u := url.URL{
		Scheme: e.Scheme,
		Host:   e.hostport(),
		Path:   strings.TrimSuffix(e.Path, "/"),
	}
	if e.User != "" {
		u.User = url.UserPassword(e.User, e.Password)
	}
	return u.String()
}

// NewEndpoint parses rawURL into an Endpoint. Only the http and https
// schemes are accepted; userinfo, an explicit port and a path are all
// optional.
func NewEndpoint(rawURL string) (Endpoint, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Endpoint{}, fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	if !u.IsAbs() {
		return Endpoint{}, fmt.Errorf("%w: %q is not an absolute URL", ErrInvalidEndpoint, rawURL)
	}

	var user, pass string
	if u.User != nil {
		user = u.User.Username()
		pass, _ = u.User.Password()
	}

	var port int
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return Endpoint{}, fmt.Errorf("%w: invalid port %q", ErrInvalidEndpoint, p)
		}
	}

	e := Endpoint{
		Scheme:   u.Scheme,
		Host:     u.Hostname(),
		Port:     port,
		Path:     u.Path,
		User:     user,
		Password: pass,
	}
	if err := e.validate(); err != nil {
		return Endpoint{}, err
	}
	return e, nil
}

// DiscoveryURL returns the "info/refs?service=<service>" URL used for
// reference discovery against service (UploadPackService or
// ReceivePackService).
func (e Endpoint) DiscoveryURL(service string) (string, error) {
	if err := e.validate(); err != nil {
		return "", err
	}
	return e.base() + infoRefsPath + "?service=" + service, nil
}

// ServiceURL returns the POST URL for service, e.g. ".../git-upload-pack".
func (e Endpoint) ServiceURL(service string) (string, error) {
	if err := e.validate(); err != nil {
		return "", err
	}
	return e.base() + "/" + service, nil
}
