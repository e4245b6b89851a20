// Package store defines the object-store contract the smart driver
// depends on (pack ingestion and ref reads/writes) and provides a
// concrete, filesystem-backed implementation for a complete, runnable
// module.
package store

import (
	"io"

	"github.com/go-git-smart/smarthttp/protocol"
)

// HeadRef is the name of the symbolic HEAD reference.
const HeadRef = "HEAD"

// RefTarget is what a reference points at: either a direct object id or
// another reference name (a symbolic ref, as HEAD usually is).
type RefTarget struct {
	Hash     protocol.ObjectID
	Symbolic string // non-empty means this is a symbolic ref
}

// Direct builds a RefTarget pointing straight at an object id.
func Direct(id protocol.ObjectID) RefTarget { return RefTarget{Hash: id} }

// Symbolic builds a RefTarget pointing at another ref by name.
func Symbolic(name string) RefTarget { return RefTarget{Symbolic: name} }

// IsSymbolic reports whether t is a symbolic ref.
func (t RefTarget) IsSymbolic() bool { return t.Symbolic != "" }

// PackWriter ingests a complete PACK byte stream (already demultiplexed
// out of any side-band framing) and returns the pack's checksum and
// object count.
type PackWriter interface {
	PackFrom(r io.Reader) (id protocol.ObjectID, objectCount int, err error)
}

// RefWriter persists a single ref update.
type RefWriter interface {
	WriteRef(name string, target RefTarget) error
}

// RefReader resolves refs already known to the store, used to build the
// local "have" set and to read HEAD/local ref values for orchestration.
type RefReader interface {
	ReadRef(name string) (RefTarget, error)
	ListRefs() (map[string]protocol.ObjectID, error)
}

// Store is the full contract a Fetch/Push driver and the orchestration
// layer depend on.
type Store interface {
	PackWriter
	RefWriter
	RefReader
}
