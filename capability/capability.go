// Package capability models the Git protocol capability set exchanged
// during reference discovery: a closed vocabulary of well-known
// capabilities plus an open extension mechanism for server-specific ones.
package capability

import "errors"

// Capability is a tagged protocol capability name.
type Capability string

// Well-known capabilities from the pack protocol capability list.
const (
	MultiACK         Capability = "multi_ack"
	MultiACKDetailed Capability = "multi_ack_detailed"
	ThinPack         Capability = "thin-pack"
	Sideband         Capability = "side-band"
	Sideband64k      Capability = "side-band-64k"
	OFSDelta         Capability = "ofs-delta"
	Agent            Capability = "agent"
	ReportStatus     Capability = "report-status"
	NoDone           Capability = "no-done"
	NoProgress       Capability = "no-progress"
	IncludeTag       Capability = "include-tag"
	Shallow          Capability = "shallow"
	DeleteRefs       Capability = "delete-refs"
	Quiet            Capability = "quiet"
	Atomic           Capability = "atomic"
	PushOptions      Capability = "push-options"
	SymRef           Capability = "symref"
)

// argumentArity describes how many values a capability accepts: 0 (none
// allowed), 1 (exactly one, set semantics) or -1 (any number, add
// semantics). Capabilities absent from this table are treated as unknown
// extension capabilities and default to -1 (accept any argument shape),
// so unrecognized capabilities are passed through rather than rejected.
var argumentArity = map[Capability]int{
	MultiACK:         0,
	MultiACKDetailed: 0,
	ThinPack:         0,
	Sideband:         0,
	Sideband64k:      0,
	OFSDelta:         0,
	Agent:            1,
	ReportStatus:     0,
	NoDone:           0,
	NoProgress:       0,
	IncludeTag:       0,
	Shallow:          0,
	DeleteRefs:       0,
	Quiet:            0,
	Atomic:           0,
	PushOptions:      0,
	SymRef:           -1,
}

var (
	// ErrArguments is returned when a capability is given an argument
	// shape it does not accept.
	ErrArguments = errors.New("capability: invalid arguments")
	// ErrArgumentsRequired is returned when a capability that requires an
	// argument is added without one.
	ErrArgumentsRequired = errors.New("capability: arguments required")
	// ErrEmptyArgument is returned when an empty string is given as an
	// argument value.
	ErrEmptyArgument = errors.New("capability: empty argument")
	// ErrMultipleArguments is returned when a single-valued capability is
	// given more than one value, or is Add-ed a second time.
	ErrMultipleArguments = errors.New("capability: multiple arguments not allowed")
)

// DefaultAgent is the User-Agent-equivalent value advertised through the
// agent capability, independent from the HTTP User-Agent header (see
// Design Notes: the client's own agent string is never intersected).
func DefaultAgent() string {
	return "git/smarthttp"
}
