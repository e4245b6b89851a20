package smart

import (
	"io"

	"github.com/go-git-smart/smarthttp/protocol"
	"github.com/go-git-smart/smarthttp/sideband"
	"github.com/go-git-smart/smarthttp/store"
	"github.com/go-git-smart/smarthttp/transport"
)

func sidebandType(mode transport.SideBandMode) sideband.Type {
	switch mode {
	case transport.SideBand64k:
		return sideband.Sideband64k
	case transport.SideBand:
		return sideband.Sideband
	default:
		return sideband.None
	}
}

// ingestPack demultiplexes r per mode and hands the pack-data channel to
// st, forwarding progress/error channel bytes to progress/stderr if set.
func ingestPack(r io.Reader, mode transport.SideBandMode, st store.PackWriter, progress, stderr io.Writer) (protocol.ObjectID, int, error) {
	demux := sideband.NewDemuxer(sidebandType(mode), r)
	demux.Progress = progress
	demux.Stderr = stderr

	id, count, err := st.PackFrom(demux)
	if err != nil {
		return protocol.ObjectID{}, 0, transport.NewStoreError(err)
	}
	return id, count, nil
}
