package store_test

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-git-smart/smarthttp/protocol"
	"github.com/go-git-smart/smarthttp/store"
)

func fakePack(t *testing.T, objectCount uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("PACK")
	require.NoError(t, binary.Write(&buf, binary.BigEndian, uint32(2)))
	require.NoError(t, binary.Write(&buf, binary.BigEndian, objectCount))
	buf.WriteString("...fake-object-bytes...")
	return buf.Bytes()
}

func TestPackFromReadsHeaderCount(t *testing.T) {
	s := store.NewMemoryFileStore()
	id, count, err := s.PackFrom(bytes.NewReader(fakePack(t, 7)))
	require.NoError(t, err)
	require.Equal(t, 7, count)
	require.False(t, id.IsZero())
}

func TestPackFromRejectsNonPack(t *testing.T) {
	s := store.NewMemoryFileStore()
	_, _, err := s.PackFrom(bytes.NewReader([]byte("not a pack at all")))
	require.ErrorIs(t, err, store.ErrNotPackFormat)
}

func TestPackFromRejectsTruncatedHeader(t *testing.T) {
	s := store.NewMemoryFileStore()
	_, _, err := s.PackFrom(bytes.NewReader([]byte("PACK")))
	require.ErrorIs(t, err, store.ErrNotPackFormat)
}

func TestWriteAndReadDirectRef(t *testing.T) {
	s := store.NewMemoryFileStore()
	id, err := protocol.ParseObjectID(strings.Repeat("a", 40))
	require.NoError(t, err)

	require.NoError(t, s.WriteRef("heads/master", store.Direct(id)))

	got, err := s.ReadRef("heads/master")
	require.NoError(t, err)
	require.False(t, got.IsSymbolic())
	require.Equal(t, id, got.Hash)
}

func TestWriteAndReadSymbolicRef(t *testing.T) {
	s := store.NewMemoryFileStore()
	require.NoError(t, s.WriteRef(store.HeadRef, store.Symbolic("heads/master")))

	got, err := s.ReadRef(store.HeadRef)
	require.NoError(t, err)
	require.True(t, got.IsSymbolic())
	require.Equal(t, "heads/master", got.Symbolic)
}

func TestReadMissingRef(t *testing.T) {
	s := store.NewMemoryFileStore()
	_, err := s.ReadRef("heads/nope")
	require.ErrorIs(t, err, store.ErrRefNotFound)
}

func TestListRefsSkipsSymbolic(t *testing.T) {
	s := store.NewMemoryFileStore()
	id, err := protocol.ParseObjectID(strings.Repeat("b", 40))
	require.NoError(t, err)

	require.NoError(t, s.WriteRef("heads/master", store.Direct(id)))
	require.NoError(t, s.WriteRef(store.HeadRef, store.Symbolic("heads/master")))

	refs, err := s.ListRefs()
	require.NoError(t, err)
	require.Equal(t, id, refs["heads/master"])
	_, hasHead := refs[store.HeadRef]
	require.False(t, hasHead)
}
