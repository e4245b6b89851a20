package capability

import (
	"fmt"
	"strings"
)

type entry struct {
	cap    Capability
	values []string
}

// List is an ordered multimap of capabilities to their argument values, as
// advertised or requested on the wire: "thin-pack side-band-64k
// agent=git/2.40 symref=HEAD:refs/heads/main". Iteration and String()
// preserve first-insertion order of distinct capabilities, matching what
// git itself produces.
type List struct {
	entries []entry
	index   map[Capability]int
}

// NewList returns an empty, ready to use List.
func NewList() *List {
	return &List{index: make(map[Capability]int)}
}

// IsEmpty reports whether the list has no capabilities at all.
func (l *List) IsEmpty() bool {
	return len(l.entries) == 0
}

func arity(c Capability) int {
	if n, ok := argumentArity[c]; ok {
		return n
	}
	return -1
}

// Add appends values to c, creating it if absent. A zero-argument
// capability must be Add-ed with no values; a single-valued capability
// (e.g. agent) can only be Add-ed once.
func (l *List) Add(c Capability, values ...string) error {
	n := arity(c)
	switch {
	case n == 0 && len(values) > 0:
		return ErrArguments
	case n == 1 && len(values) > 1:
		return ErrMultipleArguments
	case n == -1 && len(values) == 0 && requiresArgument(c):
		return ErrArgumentsRequired
	}

	for _, v := range values {
		if v == "" {
			return ErrEmptyArgument
		}
	}

	if idx, ok := l.index[c]; ok {
		if n == 1 && (len(l.entries[idx].values) > 0 || len(values) > 0) {
			return ErrMultipleArguments
		}
		l.entries[idx].values = append(l.entries[idx].values, values...)
		return nil
	}

	l.index[c] = len(l.entries)
	l.entries = append(l.entries, entry{cap: c, values: values})
	return nil
}

func requiresArgument(c Capability) bool {
	return c == SymRef
}

// Set replaces any existing values for c with values, creating c if absent.
func (l *List) Set(c Capability, values ...string) error {
	l.Delete(c)
	return l.Add(c, values...)
}

// Get returns the values associated with c, or nil if c is absent.
func (l *List) Get(c Capability) []string {
	if idx, ok := l.index[c]; ok {
		return l.entries[idx].values
	}
	return nil
}

// Supports reports whether c is present in the list, regardless of value.
func (l *List) Supports(c Capability) bool {
	_, ok := l.index[c]
	return ok
}

// Delete removes c from the list, if present.
func (l *List) Delete(c Capability) {
	idx, ok := l.index[c]
	if !ok {
		return
	}

	l.entries = append(l.entries[:idx], l.entries[idx+1:]...)
	delete(l.index, c)
	for cap, i := range l.index {
		if i > idx {
			l.index[cap] = i - 1
		}
	}
}

// All returns every capability present, in insertion order.
func (l *List) All() []Capability {
	if len(l.entries) == 0 {
		return nil
	}

	out := make([]Capability, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.cap
	}
	return out
}

// String renders the list the way it appears on the wire: one
// space-separated token per (capability, value) pair, "cap" for
// zero-argument capabilities and "cap=value" otherwise.
func (l *List) String() string {
	var tokens []string
	for _, e := range l.entries {
		if len(e.values) == 0 {
			tokens = append(tokens, string(e.cap))
			continue
		}
		for _, v := range e.values {
			tokens = append(tokens, fmt.Sprintf("%s=%s", e.cap, v))
		}
	}
	return strings.Join(tokens, " ")
}

// Decode parses a space-separated capability string as found after the NUL
// byte on the first advertised ref line.
func (l *List) Decode(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" {
		return nil
	}

	for _, token := range strings.Fields(raw) {
		name, value, hasValue := strings.Cut(token, "=")
		c := Capability(name)
		if !hasValue {
			if err := l.Add(c); err != nil {
				if err == ErrArguments {
					// Unknown capabilities tolerate no declared arity; treat
					// as zero-argument like git itself would for a bare token.
					continue
				}
				return err
			}
			continue
		}
		if err := l.Add(c, value); err != nil {
			return err
		}
	}

	return nil
}

// Intersect returns the capabilities present in both l and other, by
// structural equality of the capability name. Argument values are not
// compared. Agent is never carried through intersection: it identifies
// each side's implementation, not something either side negotiates, and
// the client's own agent string goes out via the User-Agent header
// instead.
func (l *List) Intersect(other *List) *List {
	out := NewList()
	for _, c := range l.All() {
		if c == Agent {
			continue
		}
		if other.Supports(c) {
			out.Add(c, l.Get(c)...) // nolint: errcheck
		}
	}
	return out
}
