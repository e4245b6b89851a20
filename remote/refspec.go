// Package remote implements the orchestration policies layered on top of
// the Fetch, Push and Ls drivers: clone, fetch-one, fetch-some, fetch-all
// and update-and-create.
package remote

import (
	"errors"
	"strings"
)

const (
	refSpecWildcard  = "*"
	refSpecForce     = "+"
	refSpecSeparator = ":"
)

// ErrRefSpecMalformed is returned by ParseRefSpec for input that doesn't
// contain exactly one ':' separator or that pairs a wildcard source with
// a non-wildcard destination (or vice versa).
var ErrRefSpecMalformed = errors.New("remote: malformed refspec")

// RefSpec is a fetch mapping from a remote reference pattern to a local
// one: an optional leading "+" allows non-fast-forward updates, followed
// by "<src>:<dst>" where both sides carry at most one "*" wildcard.
//
// "+refs/heads/*:refs/remotes/origin/*"
type RefSpec string

// ParseRefSpec validates s and returns it as a RefSpec.
func ParseRefSpec(s string) (RefSpec, error) {
	rs := RefSpec(s)
	if !rs.IsValid() {
		return "", ErrRefSpecMalformed
	}
	return rs, nil
}

// IsValid reports whether s has exactly one separator and balanced
// wildcards on both sides.
func (s RefSpec) IsValid() bool {
	raw := s.raw()
	if strings.Count(raw, refSpecSeparator) != 1 {
		return false
	}
	src, dst, _ := strings.Cut(raw, refSpecSeparator)
	if dst == "" {
		return false
	}
	ws := strings.Count(src, refSpecWildcard)
	wd := strings.Count(dst, refSpecWildcard)
	return ws == wd && ws < 2
}

// IsForceUpdate reports whether s allows non-fast-forward updates.
func (s RefSpec) IsForceUpdate() bool {
	return strings.HasPrefix(string(s), refSpecForce)
}

func (s RefSpec) raw() string {
	if s.IsForceUpdate() {
		return string(s)[1:]
	}
	return string(s)
}

func (s RefSpec) isGlob() bool {
	return strings.Contains(s.raw(), refSpecWildcard)
}

// Src returns the source side of the mapping.
func (s RefSpec) Src() string {
	src, _, _ := strings.Cut(s.raw(), refSpecSeparator)
	return src
}

func (s RefSpec) dst() string {
	_, dst, _ := strings.Cut(s.raw(), refSpecSeparator)
	return dst
}

// Match reports whether name matches the refspec's source pattern.
func (s RefSpec) Match(name string) bool {
	if !s.isGlob() {
		return s.Src() == name
	}
	prefix, suffix, _ := strings.Cut(s.Src(), refSpecWildcard)
	return len(name) >= len(prefix)+len(suffix) &&
		strings.HasPrefix(name, prefix) &&
		strings.HasSuffix(name, suffix)
}

// Dst returns the local reference name that name maps to under s. Callers
// must check Match first; Dst does not validate the match.
func (s RefSpec) Dst(name string) string {
	dst := s.dst()
	if !s.isGlob() {
		return dst
	}
	prefix, suffix, _ := strings.Cut(s.Src(), refSpecWildcard)
	mid := strings.TrimSuffix(strings.TrimPrefix(name, prefix), suffix)
	dPrefix, dSuffix, _ := strings.Cut(dst, refSpecWildcard)
	return dPrefix + mid + dSuffix
}

// MatchAny reports whether any of specs matches name.
func MatchAny(specs []RefSpec, name string) bool {
	for _, s := range specs {
		if s.Match(name) {
			return true
		}
	}
	return false
}

// RefMap maps remote reference names to the local reference name they
// should be written to. It is the explicit, non-wildcard form used by
// fetch-one and fetch-some; ExpandRefSpecs below builds one from
// wildcard refspecs once the advertised ref set is known.
type RefMap map[string]string

// ExpandRefSpecs resolves specs against the advertised ref names and
// returns the concrete remote->local mapping.
func ExpandRefSpecs(specs []RefSpec, advertised []string) RefMap {
	m := make(RefMap)
	for _, name := range advertised {
		for _, s := range specs {
			if s.Match(name) {
				m[name] = s.Dst(name)
				break
			}
		}
	}
	return m
}
