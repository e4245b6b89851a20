package protocol_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-git-smart/smarthttp/protocol"
)

func TestDecodeReportStatusAllOK(t *testing.T) {
	buf := &bytes.Buffer{}
	writeLine(t, buf, "unpack ok")
	writeLine(t, buf, "ok refs/heads/topic")
	writeLine(t, buf, "ok refs/heads/main")
	writeFlush(t, buf)

	rs, err := protocol.DecodeReportStatus(buf)
	require.NoError(t, err)
	require.True(t, rs.UnpackOK)
	require.Len(t, rs.Commands, 2)
	require.Empty(t, rs.Commands[0].Error)
	require.Empty(t, rs.Commands[1].Error)
}

func TestDecodeReportStatusCommandFailure(t *testing.T) {
	buf := &bytes.Buffer{}
	writeLine(t, buf, "unpack ok")
	writeLine(t, buf, "ng refs/heads/main non-fast-forward")
	writeFlush(t, buf)

	rs, err := protocol.DecodeReportStatus(buf)
	require.NoError(t, err)
	require.True(t, rs.UnpackOK)
	require.Equal(t, "non-fast-forward", rs.Commands[0].Error)
}

func TestDecodeReportStatusUnpackFailure(t *testing.T) {
	buf := &bytes.Buffer{}
	writeLine(t, buf, "unpack index-pack failed")
	writeFlush(t, buf)

	rs, err := protocol.DecodeReportStatus(buf)
	require.NoError(t, err)
	require.False(t, rs.UnpackOK)
	require.Equal(t, "index-pack failed", rs.UnpackError)
}

func TestDecodeReportStatusMissingFlush(t *testing.T) {
	buf := &bytes.Buffer{}
	writeLine(t, buf, "unpack ok")
	writeLine(t, buf, "ok refs/heads/topic")

	_, err := protocol.DecodeReportStatus(buf)
	require.ErrorIs(t, err, protocol.ErrMissingFlush)
}
