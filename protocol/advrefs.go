package protocol

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-git-smart/smarthttp/capability"
	"github.com/go-git-smart/smarthttp/pktline"
)

// RefEntry is one advertised reference.
type RefEntry struct {
	ID     ObjectID
	Name   string
	Peeled bool
}

// RefAdvertisement is the parsed result of reference discovery: the
// advertised refs, the server's capability set (always present, even
// when Refs is empty) and any shallow commits the server reports.
type RefAdvertisement struct {
	Refs         []RefEntry
	Capabilities *capability.List
	Shallow      []ObjectID
}

// ErrEmptyAdvertisement is returned when the very first pkt-line is a
// flush: the repository has no refs and (per the HTTP dumb/smart
// boundary) no capabilities line to read either.
var ErrEmptyAdvertisement = errors.New("protocol: empty advertised-refs message")

const noHeadMark = "capabilities^{}\x00"

var (
	peeledSuffix  = []byte("^{}")
	servicePrefix = []byte("# service=")
)

// DecodeAdvRefs reads a reference advertisement from r.
//
// This is where the "suspended decoder state" shape from the original
// design is kept as an internal implementation technique rather than an
// externally visible one: a small state-function loop walks the
// pkt-line stream, and the caller only ever sees this one blocking call.
func DecodeAdvRefs(r io.Reader) (*RefAdvertisement, error) {
	d := &advRefsDecoder{
		r:    r,
		data: &RefAdvertisement{Capabilities: capability.NewList()},
	}
	for state := decodeServicePrefix; state != nil; {
		state = state(d)
	}
	return d.data, d.err
}

type advRefsStateFn func(*advRefsDecoder) advRefsStateFn

type advRefsDecoder struct {
	r      io.Reader
	line   []byte
	length int
	nLine  int
	hash   ObjectID
	head   bool
	err    error
	data   *RefAdvertisement
}

func (d *advRefsDecoder) fail(format string, a ...interface{}) advRefsStateFn {
	d.err = fmt.Errorf("advertised-refs: line %d: %s", d.nLine, fmt.Sprintf(format, a...))
	return nil
}

func (d *advRefsDecoder) nextLine() bool {
	d.nLine++
	n, line, err := pktline.ReadLine(d.r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			if d.nLine == 1 {
				d.err = ErrEmptyAdvertisement
			} else {
				d.fail("unexpected end of input")
			}
			return false
		}
		d.err = err
		return false
	}
	d.length = n
	d.line = line
	return true
}

// decodeServicePrefix consumes the "# service=<name>" line and its
// terminating flush that real HTTP Smart servers prepend to every
// discovery response, if present, before handing off to the actual
// advertisement decoding.
func decodeServicePrefix(d *advRefsDecoder) advRefsStateFn {
	if !d.nextLine() {
		return nil
	}
	if bytes.HasPrefix(d.line, servicePrefix) {
		if !d.nextLine() {
			return nil
		}
		if d.length != pktline.Flush {
			return d.fail("expected flush after service announcement")
		}
		if !d.nextLine() {
			return nil
		}
	}
	return decodeFirstHash
}

func decodeFirstHash(d *advRefsDecoder) advRefsStateFn {
	if d.length == pktline.Flush {
		d.err = ErrEmptyAdvertisement
		return nil
	}
	if len(d.line) < 40 {
		return d.fail("pkt-line too short for hash")
	}

	id, err := ParseObjectID(string(d.line[:40]))
	if err != nil {
		return d.fail("%s", err)
	}
	d.hash = id
	d.line = d.line[40:]

	if d.hash.IsZero() {
		return decodeNoRefs
	}
	return decodeFirstRef
}

func decodeNoRefs(d *advRefsDecoder) advRefsStateFn {
	if !bytes.HasPrefix(d.line, []byte(" "+noHeadMark)) {
		return d.fail("malformed zero-id ref line")
	}
	d.line = d.line[len(" "+noHeadMark):]
	return decodeCaps
}

func decodeFirstRef(d *advRefsDecoder) advRefsStateFn {
	if len(d.line) < 2 || d.line[0] != ' ' {
		return d.fail("no space after hash")
	}
	d.line = d.line[1:]

	parts := bytes.SplitN(d.line, []byte{0}, 2)
	if len(parts) < 2 {
		return d.fail("NUL not found after first ref name")
	}
	name := string(parts[0])
	d.line = parts[1]

	if name == "HEAD" {
		d.head = true
	}
	d.data.Refs = append(d.data.Refs, RefEntry{ID: d.hash, Name: name})

	return decodeCaps
}

func decodeCaps(d *advRefsDecoder) advRefsStateFn {
	if err := d.data.Capabilities.Decode(d.line); err != nil {
		return d.fail("invalid capabilities: %s", err)
	}
	return decodeOtherRefs
}

func decodeOtherRefs(d *advRefsDecoder) advRefsStateFn {
	if !d.nextLine() {
		return nil
	}

	if bytes.HasPrefix(d.line, []byte("shallow ")) {
		return decodeShallow
	}
	if len(d.line) == 0 {
		return nil
	}

	peeled := bytes.HasSuffix(d.line, peeledSuffix)
	line := bytes.TrimSuffix(d.line, peeledSuffix)

	sp := bytes.IndexByte(line, ' ')
	if sp < 0 {
		return d.fail("malformed ref line, no space found")
	}
	id, err := ParseObjectID(string(line[:sp]))
	if err != nil {
		return d.fail("%s", err)
	}
	d.data.Refs = append(d.data.Refs, RefEntry{ID: id, Name: string(line[sp+1:]), Peeled: peeled})

	return decodeOtherRefs
}

func decodeShallow(d *advRefsDecoder) advRefsStateFn {
	rest := bytes.TrimPrefix(d.line, []byte("shallow "))
	if len(rest) != 40 {
		return d.fail("malformed shallow line")
	}
	id, err := ParseObjectID(string(rest))
	if err != nil {
		return d.fail("%s", err)
	}
	d.data.Shallow = append(d.data.Shallow, id)

	if !d.nextLine() {
		return nil
	}
	if len(d.line) == 0 {
		return nil
	}
	return decodeShallow
}
