// Package negotiate defines the pluggable negotiation strategy the
// Fetch driver consults each round, plus a minimal default
// implementation.
package negotiate

import "github.com/go-git-smart/smarthttp/protocol"

// Outcome is what a Negotiator decides to do after seeing one round's
// acknowledgements.
type Outcome int

const (
	// Again means "send another Flush round", optionally adding more
	// haves to the shared have-set first.
	Again Outcome = iota
	// Ready means the server has already said it's ready to send the
	// pack; read the NegotiationResult in the current response and
	// proceed straight to PACK.
	Ready
	// Done means "send one final Done round"; the loop reads that
	// round's acks, then the NegotiationResult, then PACK.
	Done
)

// Decision is the result of one negotiation callback invocation.
type Decision struct {
	Outcome    Outcome
	AddedHaves []protocol.ObjectID // only meaningful for Again
}

// Negotiator decides how a fetch negotiation loop should proceed given
// the acks seen so far.
type Negotiator interface {
	// Next is called once per round with the round's parsed Acks.
	// Implementations needing bookkeeping across rounds keep it
	// internally.
	Next(acks *protocol.Acks) Decision
}

// FirstCommon is the simplest strategy: Ready as soon as the server says
// ready, Done as soon as the server acknowledges anything else, and
// Again while a round brings no acks at all, up to a fifth such round,
// after which it sends Done.
type FirstCommon struct {
	rounds int
}

// NewFirstCommon returns a ready-to-use FirstCommon negotiator.
func NewFirstCommon() *FirstCommon { return &FirstCommon{} }

// Next implements Negotiator.
func (f *FirstCommon) Next(acks *protocol.Acks) Decision {
	f.rounds++

	for _, a := range acks.Acks {
		if a.Status == protocol.AckReady {
			return Decision{Outcome: Ready}
		}
		if a.Status == protocol.AckCommon || a.Status == protocol.AckContinue {
			return Decision{Outcome: Done}
		}
	}

	if len(acks.Acks) > 0 {
		return Decision{Outcome: Done}
	}

	// Nothing acknowledged yet and the server didn't say ready: give up
	// after a bounded number of rounds rather than looping forever
	// against a server that will never find anything in common.
	if f.rounds >= 5 {
		return Decision{Outcome: Done}
	}
	return Decision{Outcome: Again}
}
