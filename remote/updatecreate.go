package remote

import (
	"context"

	"github.com/go-git-smart/smarthttp/protocol"
	"github.com/go-git-smart/smarthttp/smart"
)

// PushHandler computes the update commands to send given the advertised
// remote refs and the local refs the caller wants to publish.
type PushHandler func(advertised []protocol.RefEntry, local map[string]protocol.ObjectID) []protocol.Command

// UpdateAndCreate pushes every local ref in refs to the remote, creating
// it there if the remote has no matching ref yet and fast-forwarding it
// otherwise. Command computation is delegated entirely to handler, which
// typically is DefaultPushHandler.
func UpdateAndCreate(ctx context.Context, c Client, refs map[string]protocol.ObjectID, handler PushHandler) (*smart.PushResult, error) {
	if handler == nil {
		handler = DefaultPushHandler
	}

	return smart.Push(ctx, smart.PushRequest{
		Doer:         c.Doer,
		Endpoint:     c.Endpoint,
		Capabilities: c.Capabilities,
		Generator:    c.Generator,
		Push: func(advertised []protocol.RefEntry) []protocol.Command {
			return handler(advertised, refs)
		},
	})
}

// DefaultPushHandler creates or fast-forward-updates every ref in local
// against the remote's advertised state: an update command when the
// remote already has the ref at a different id, a create command
// (Old == zero) when it doesn't have the ref at all, and no command when
// the remote is already at the same id.
func DefaultPushHandler(advertised []protocol.RefEntry, local map[string]protocol.ObjectID) []protocol.Command {
	remoteRefs := make(map[string]protocol.ObjectID, len(advertised))
	for _, ref := range advertised {
		remoteRefs[ref.Name] = ref.ID
	}

	var commands []protocol.Command
	for name, id := range local {
		old, ok := remoteRefs[name]
		if ok && old == id {
			continue
		}
		commands = append(commands, protocol.Command{Old: old, New: id, Name: name})
	}
	return commands
}
