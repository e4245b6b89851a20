package protocol_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-git-smart/smarthttp/pktline"
)

func writeLine(t *testing.T, buf *bytes.Buffer, s string) {
	t.Helper()
	_, err := pktline.WritePacketLine(buf, s)
	require.NoError(t, err)
}

func writeFlush(t *testing.T, buf *bytes.Buffer) {
	t.Helper()
	require.NoError(t, pktline.WriteFlush(buf))
}
