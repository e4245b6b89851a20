// Package trace provides environment-gated tracing targets for
// debugging the transport driver: packet-level pktline dumps,
// negotiation round decisions, and raw HTTP request/response info.
package trace

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync/atomic"
)

var (
	logger  = newLogger()
	current atomic.Int32
)

func newLogger() *log.Logger {
	return log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds|log.Lshortfile)
}

// Target is a tracing target.
type Target int32

const (
	// General traces driver-level decisions (negotiation outcomes, ref
	// selection).
	General Target = 1 << iota
	// Packet traces individual pkt-line frames as they're read/written.
	Packet
	// HTTP traces outgoing requests and incoming response status lines.
	HTTP
)

// envToTarget maps the environment variables that enable each target.
var envToTarget = map[string]Target{
	"SMARTHTTP_TRACE":        General,
	"SMARTHTTP_TRACE_PACKET": Packet,
	"SMARTHTTP_TRACE_HTTP":   HTTP,
}

func init() {
	ReadEnv()
}

// ReadEnv re-reads the trace environment variables and sets the active
// targets accordingly. Called once at package init; exported so a long
// running process can re-read after changing its environment.
func ReadEnv() {
	var target Target
	for k, v := range envToTarget {
		if val, _ := strconv.ParseBool(os.Getenv(k)); val {
			target |= v
		}
	}
	SetTarget(target)
}

// SetTarget sets the active tracing targets directly, overriding
// whatever ReadEnv computed.
func SetTarget(target Target) {
	current.Store(int32(target))
}

// SetLogger replaces the destination logger for all targets.
func SetLogger(l *log.Logger) {
	logger = l
}

// Enabled reports whether t is among the active targets.
func (t Target) Enabled() bool {
	return int32(t)&current.Load() != 0
}

// Print logs args if t is enabled.
func (t Target) Print(args ...any) {
	if t.Enabled() {
		logger.Output(2, fmt.Sprint(args...)) // nolint: errcheck
	}
}

// Printf logs a formatted message if t is enabled.
func (t Target) Printf(format string, args ...any) {
	if t.Enabled() {
		logger.Output(2, fmt.Sprintf(format, args...)) // nolint: errcheck
	}
}
