package transport

import (
	"bytes"
	"fmt"
	"net/http"
)

// SmartError wraps a protocol decoding failure: a malformed frame, an
// unexpected message, or an unexpected end of input while a decoder was
// still waiting on bytes. Payload carries whatever diagnostic bytes the
// decoder had extracted when it failed.
type SmartError struct {
	Err     error
	Payload []byte
}

func NewSmartError(err error, payload []byte) error {
	return &SmartError{Err: err, Payload: payload}
}

func (e *SmartError) Error() string {
	if len(e.Payload) == 0 {
		return fmt.Sprintf("smart: %s", e.Err)
	}
	return fmt.Sprintf("smart: %s: %q", e.Err, e.Payload)
}

func (e *SmartError) Unwrap() error { return e.Err }

// StoreError wraps a failure from the object store: pack ingestion or a
// ref write.
type StoreError struct {
	Err error
}

func NewStoreError(err error) error {
	return &StoreError{Err: err}
}

func (e *StoreError) Error() string { return fmt.Sprintf("store: %s", e.Err) }
func (e *StoreError) Unwrap() error { return e.Err }

// SyncError is a failure signalled by the remote side or the HTTP layer:
// an undecodable discovery response (an ERR pktline or a non-pktline
// body, since some servers answer with a plain error page), a non-2xx
// response, an error from the Doer, or a failed unpack in report-status.
// Side-band error-channel messages received during PACK ingestion are
// not reported as SyncError; they surface wrapped in a StoreError.
type SyncError struct {
	Msg string
}

func NewSyncError(msg string) error {
	return &SyncError{Msg: msg}
}

func (e *SyncError) Error() string { return fmt.Sprintf("sync: %s", e.Msg) }

// ErrUnexpectedEndOfInput is returned when the response body ends while a
// decoder was still expecting more bytes.
var ErrUnexpectedEndOfInput = NewSmartError(fmt.Errorf("unexpected end of input"), nil)

// StatusError reports a non-2xx HTTP response that carries no pktline
// framing of its own: some servers answer an unavailable service with a
// plain text or HTML error page rather than an ERR pktline.
type StatusError struct {
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status requesting %q: %d", e.URL, e.Status)
	}
	return fmt.Sprintf("unexpected status requesting %q: %d: %s", e.URL, e.Status, e.Body)
}

// checkStatus turns a non-2xx *http.Response into a SyncError carrying
// the response body as diagnostic text, preserving whatever the server
// actually said rather than collapsing it into a generic message.
func checkStatus(res *http.Response) error {
	var buf bytes.Buffer
	if res.Body != nil {
		buf.ReadFrom(res.Body) // nolint: errcheck
		res.Body.Close()       // nolint: errcheck
	}

	se := &StatusError{Status: res.StatusCode, Body: buf.String()}
	if res.Request != nil {
		se.URL = res.Request.URL.String()
	}
	return NewSyncError(se.Error())
}
