package remote_test

import (
	"bytes"
	"encoding/binary"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-git-smart/smarthttp/capability"
	"github.com/go-git-smart/smarthttp/pktline"
)

type funcDoer struct {
	fn func(req *http.Request) (*http.Response, error)
}

func (d *funcDoer) Do(req *http.Request) (*http.Response, error) { return d.fn(req) }

func resp(body []byte) *http.Response {
	return &http.Response{StatusCode: http.StatusOK, Body: newCloser(body)}
}

type closer struct{ *bytes.Reader }

func (closer) Close() error { return nil }

func newCloser(b []byte) closer { return closer{bytes.NewReader(b)} }

func h(r rune) string { return strings.Repeat(string(r), 40) }

func clientCaps(t *testing.T) *capability.List {
	t.Helper()
	c := capability.NewList()
	require.NoError(t, c.Add(capability.Agent, "git/smarthttp"))
	require.NoError(t, c.Add(capability.OFSDelta))
	return c
}

func advertisement(t *testing.T, serverCaps string, refs ...[2]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	_, err := pktline.WritePacketLine(&buf, "# service=git-upload-pack")
	require.NoError(t, err)
	require.NoError(t, pktline.WriteFlush(&buf))
	for i, r := range refs {
		line := r[0] + " " + r[1]
		if i == 0 {
			line += "\x00" + serverCaps
		}
		_, err := pktline.WritePacketLine(&buf, line)
		require.NoError(t, err)
	}
	require.NoError(t, pktline.WriteFlush(&buf))
	return buf.Bytes()
}

func fakePack(t *testing.T, objectCount uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("PACK")
	require.NoError(t, binary.Write(&buf, binary.BigEndian, uint32(2)))
	require.NoError(t, binary.Write(&buf, binary.BigEndian, objectCount))
	buf.WriteString("...fake-object-bytes...")
	return buf.Bytes()
}

func nakThenPack(t *testing.T, pack []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	_, err := pktline.WritePacketLine(&buf, "NAK")
	require.NoError(t, err)
	buf.Write(pack)
	return buf.Bytes()
}
