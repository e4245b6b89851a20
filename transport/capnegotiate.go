package transport

import "github.com/go-git-smart/smarthttp/capability"

// SideBandMode identifies which side-band capability, if any, governs the
// PACK phase of the connection.
type SideBandMode int

const (
	SideBandNone SideBandMode = iota
	SideBand
	SideBand64k
)

// AckMode identifies which acknowledgement capability governs the
// negotiation rounds of a fetch.
type AckMode int

const (
	AckSingle AckMode = iota
	AckMulti
	AckMultiDetailed
)

// Negotiated bundles the outcome of intersecting client and server
// capabilities: the common set plus the derived side-band and ack modes.
type Negotiated struct {
	Common   *capability.List
	SideBand SideBandMode
	AckMode  AckMode
}

// Negotiate intersects client and server capabilities and derives the
// side-band and ack modes per the precedence table: side-band-64k before
// side-band before none; multi-ack-detailed before multi-ack before ack.
func Negotiate(client, server *capability.List) Negotiated {
	common := client.Intersect(server)

	n := Negotiated{Common: common}

	switch {
	case common.Supports(capability.Sideband64k):
		n.SideBand = SideBand64k
	case common.Supports(capability.Sideband):
		n.SideBand = SideBand
	default:
		n.SideBand = SideBandNone
	}

	switch {
	case common.Supports(capability.MultiACKDetailed):
		n.AckMode = AckMultiDetailed
	case common.Supports(capability.MultiACK):
		n.AckMode = AckMulti
	default:
		n.AckMode = AckSingle
	}

	return n
}
