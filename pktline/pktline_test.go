package pktline_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-git-smart/smarthttp/pktline"
)

func TestWriteReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	_, err := pktline.WritePacketLine(&buf, "want deadbeef")
	require.NoError(t, err)
	require.NoError(t, pktline.WriteFlush(&buf))

	length, payload, err := pktline.ReadLine(&buf)
	require.NoError(t, err)
	require.False(t, pktline.IsFlush(length))
	require.Equal(t, "want deadbeef", string(payload))

	length, payload, err = pktline.ReadLine(&buf)
	require.NoError(t, err)
	require.True(t, pktline.IsFlush(length))
	require.Nil(t, payload)
}

func TestReadPacketChunkBoundaries(t *testing.T) {
	// Exercises boundary split exactly at a read length: the payload is
	// read in one io.ReadFull call regardless of how many small Write
	// calls produced it.
	var buf bytes.Buffer
	payload := bytes.Repeat([]byte{'a'}, 100)
	_, err := pktline.WritePacket(&buf, payload)
	require.NoError(t, err)

	// Drip the bytes one at a time through a reader that returns 1 byte
	// per Read call, same as chunk-size-1 HTTP body delivery would.
	r := &oneByteReader{r: &buf}
	_, got, err := pktline.ReadPacket(r)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestReadPacketErrorLine(t *testing.T) {
	var buf bytes.Buffer
	_, err := pktline.WritePacketLine(&buf, "ERR access denied")
	require.NoError(t, err)

	_, payload, err := pktline.ReadPacket(&buf)
	var el *pktline.ErrorLine
	require.ErrorAs(t, err, &el)
	require.Equal(t, "access denied", el.Text)
	require.Contains(t, string(payload), "access denied")
}

func TestScannerStopsAtFlush(t *testing.T) {
	var buf bytes.Buffer
	pktline.WritePacketLine(&buf, "one") // nolint: errcheck
	pktline.WritePacketLine(&buf, "two") // nolint: errcheck
	pktline.WriteFlush(&buf)             // nolint: errcheck
	pktline.WritePacketLine(&buf, "unreachable")

	s := pktline.NewScanner(&buf)
	var lines []string
	for s.Scan() {
		lines = append(lines, string(bytes.TrimSuffix(s.Bytes(), []byte("\n"))))
	}
	require.NoError(t, s.Err())
	require.Equal(t, []string{"one", "two"}, lines)
}

func TestPayloadTooLong(t *testing.T) {
	var buf bytes.Buffer
	_, err := pktline.WritePacket(&buf, make([]byte, pktline.MaxPayloadSize+1))
	require.ErrorIs(t, err, pktline.ErrPayloadTooLong)
}

type oneByteReader struct{ r io.Reader }

func (o *oneByteReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return o.r.Read(p[:1])
}
