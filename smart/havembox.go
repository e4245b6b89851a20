package smart

import (
	"github.com/emirpasic/gods/sets/hashset"

	"github.com/go-git-smart/smarthttp/protocol"
)

// ObjectIdSet is an unordered, duplicate-free collection of object ids,
// used to hold the fetch loop's "have" set.
type ObjectIdSet struct {
	set *hashset.Set
}

// NewObjectIdSet returns a set containing ids.
func NewObjectIdSet(ids ...protocol.ObjectID) *ObjectIdSet {
	s := &ObjectIdSet{set: hashset.New()}
	s.Add(ids...)
	return s
}

// Add inserts ids into the set, ignoring duplicates.
func (s *ObjectIdSet) Add(ids ...protocol.ObjectID) {
	for _, id := range ids {
		s.set.Add(id)
	}
}

// Contains reports whether id is in the set.
func (s *ObjectIdSet) Contains(id protocol.ObjectID) bool {
	return s.set.Contains(id)
}

// Slice returns the set's members. Order is unspecified.
func (s *ObjectIdSet) Slice() []protocol.ObjectID {
	values := s.set.Values()
	out := make([]protocol.ObjectID, len(values))
	for i, v := range values {
		out[i] = v.(protocol.ObjectID)
	}
	return out
}

// Len reports the number of members in the set.
func (s *ObjectIdSet) Len() int { return s.set.Size() }

// haveMailbox is the single-slot asynchronous cell guarding the fetch
// loop's have-set: a buffered channel of capacity 1 makes it impossible
// to hold two values in the slot at once, and the take/put pair is the
// only permitted access idiom.
type haveMailbox chan *ObjectIdSet

func newHaveMailbox(initial *ObjectIdSet) haveMailbox {
	mb := make(haveMailbox, 1)
	mb <- initial
	return mb
}

func (m haveMailbox) take() *ObjectIdSet {
	return <-m
}

func (m haveMailbox) put(s *ObjectIdSet) {
	m <- s
}
