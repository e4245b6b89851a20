// Package packgen defines the pack-generator callback the Push driver
// invokes to produce the outgoing pack byte stream, plus a passthrough
// implementation for callers that already have pack bytes in hand.
package packgen

import (
	"io"

	"github.com/go-git-smart/smarthttp/protocol"
)

// Options controls how a generator builds the pack: a delta search
// window, max delta depth, and whether to use ofs-delta encoding. A real
// generator uses these to tune its pack writer; the seam itself is
// agnostic to them.
type Options struct {
	Window   int
	Depth    int
	OfsDelta bool
}

// DefaultOptions is a conservative window=10, depth=50, ofs-delta=true
// configuration suitable for a generator with no tuning of its own.
var DefaultOptions = Options{Window: 10, Depth: 50, OfsDelta: true}

// Generator produces the pack byte stream for a push, given the
// commands the client is asking the server to apply and the refs the
// server already advertised (so the generator can compute a minimal
// pack relative to what the server already has).
type Generator interface {
	Generate(opts Options, advertised []protocol.RefEntry, commands []protocol.Command) (io.Reader, error)
}

// Passthrough wraps a caller-supplied factory that already knows how to
// build the pack bytes (e.g. from a real delta/pack writer elsewhere in
// the caller's program); this package does not implement pack encoding
// itself, which is out of scope.
type Passthrough struct {
	Factory func(advertised []protocol.RefEntry, commands []protocol.Command) (io.Reader, error)
}

// Generate implements Generator.
func (p *Passthrough) Generate(_ Options, advertised []protocol.RefEntry, commands []protocol.Command) (io.Reader, error) {
	return p.Factory(advertised, commands)
}
