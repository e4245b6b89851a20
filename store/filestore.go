package store

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"

	"github.com/go-git-smart/smarthttp/protocol"
)

// ErrNotPackFormat is returned by PackFrom when the stream does not
// begin with the "PACK" magic.
var ErrNotPackFormat = errors.New("store: not a pack stream")

// ErrRefNotFound is returned by ReadRef for an absent ref.
var ErrRefNotFound = errors.New("store: ref not found")

const (
	packPath   = "objects/pack/pack-incoming.pack"
	refsDir    = "refs"
	symbolicPX = "ref: "
)

// FileStore is a Store backed by a billy.Filesystem: loose refs as one
// file per ref under refs/, and the most recently ingested pack written
// whole to objects/pack/. It deliberately does not index or resolve
// objects inside the pack — reading the 12-byte pack header for the
// object count is as far as "pack format" goes here, matching the
// ref-storage and pack-format non-goals.
type FileStore struct {
	fs billy.Filesystem
}

// NewFileStore wraps fs. NewMemoryFileStore is usually more convenient
// for tests and short-lived clones.
func NewFileStore(fs billy.Filesystem) *FileStore {
	return &FileStore{fs: fs}
}

// NewMemoryFileStore returns a FileStore backed by an in-memory
// filesystem, useful for tests and throwaway clones.
func NewMemoryFileStore() *FileStore {
	return &FileStore{fs: memfs.New()}
}

var _ Store = (*FileStore)(nil)

// PackFrom reads the pack header to recover the object count, streams
// the full pack to storage while hashing it, and returns the digest as
// the pack's id.
func (s *FileStore) PackFrom(r io.Reader) (protocol.ObjectID, int, error) {
	br := bufio.NewReaderSize(r, 4096)

	hdr, err := br.Peek(12)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return protocol.ZeroID, 0, ErrNotPackFormat
		}
		return protocol.ZeroID, 0, err
	}
	if !bytes.HasPrefix(hdr, []byte("PACK")) {
		return protocol.ZeroID, 0, ErrNotPackFormat
	}
	count := binary.BigEndian.Uint32(hdr[8:12])

	if err := s.fs.MkdirAll(path.Dir(packPath), 0o755); err != nil {
		return protocol.ZeroID, 0, err
	}
	f, err := s.fs.Create(packPath)
	if err != nil {
		return protocol.ZeroID, 0, err
	}

	h := sha1.New()
	_, err = io.Copy(io.MultiWriter(f, h), br)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return protocol.ZeroID, 0, err
	}

	var id protocol.ObjectID
	copy(id[:], h.Sum(nil))
	return id, int(count), nil
}

// WriteRef writes name as a loose ref file: either the 40 hex digit
// object id, or "ref: <target>" for a symbolic ref, exactly like real
// git loose refs.
func (s *FileStore) WriteRef(name string, target RefTarget) error {
	p := s.fs.Join(refsDir, name)
	if err := s.fs.MkdirAll(path.Dir(p), 0o755); err != nil {
		return err
	}

	f, err := s.fs.Create(p)
	if err != nil {
		return err
	}
	defer f.Close() // nolint: errcheck

	var line string
	if target.IsSymbolic() {
		line = symbolicPX + target.Symbolic + "\n"
	} else {
		line = target.Hash.String() + "\n"
	}

	_, err = f.Write([]byte(line))
	return err
}

// ReadRef reads name back, following a plain loose-ref/symref-ref
// distinction but not resolving symbolic refs recursively — callers
// that need the final object id call ReadRef again on Target.Symbolic.
func (s *FileStore) ReadRef(name string) (RefTarget, error) {
	f, err := s.fs.Open(s.fs.Join(refsDir, name))
	if err != nil {
		return RefTarget{}, fmt.Errorf("%w: %s", ErrRefNotFound, name)
	}
	defer f.Close() // nolint: errcheck

	data, err := io.ReadAll(f)
	if err != nil {
		return RefTarget{}, err
	}

	line := strings.TrimSuffix(string(data), "\n")
	if strings.HasPrefix(line, symbolicPX) {
		return Symbolic(strings.TrimPrefix(line, symbolicPX)), nil
	}

	id, err := protocol.ParseObjectID(line)
	if err != nil {
		return RefTarget{}, err
	}
	return Direct(id), nil
}

// ListRefs walks refs/ and returns every direct (non-symbolic) ref.
// Symbolic refs like HEAD are omitted since they carry no object id of
// their own.
func (s *FileStore) ListRefs() (map[string]protocol.ObjectID, error) {
	out := map[string]protocol.ObjectID{}
	if err := s.walkRefs(refsDir, out); err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, err
	}
	return out, nil
}

func (s *FileStore) walkRefs(dir string, out map[string]protocol.ObjectID) error {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, e := range entries {
		p := s.fs.Join(dir, e.Name())
		if e.IsDir() {
			if err := s.walkRefs(p, out); err != nil {
				return err
			}
			continue
		}

		name := strings.TrimPrefix(p, refsDir+"/")
		target, err := s.ReadRef(name)
		if err != nil || target.IsSymbolic() {
			continue
		}
		out[name] = target.Hash
	}
	return nil
}
