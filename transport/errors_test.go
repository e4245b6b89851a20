package transport_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-git-smart/smarthttp/transport"
)

func TestSmartErrorUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := transport.NewSmartError(cause, []byte("diag"))
	require.ErrorIs(t, err, cause)

	var se *transport.SmartError
	require.ErrorAs(t, err, &se)
	require.Equal(t, []byte("diag"), se.Payload)
}

func TestStoreErrorUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := transport.NewStoreError(cause)
	require.ErrorIs(t, err, cause)
}

func TestSyncErrorMessage(t *testing.T) {
	err := transport.NewSyncError("service not enabled")
	require.EqualError(t, err, "sync: service not enabled")
}
