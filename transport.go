package serialbridge

import (
	"errors"
	"time"
)

// ErrReadTimeout is returned by Transport.Receive when no complete message
// arrived within the timeout. The worker treats it as steady-state idle, not
// as a fault.
var ErrReadTimeout = errors.New("serialbridge: read timeout")

// Transport moves one message at a time to and from a device. The framing
// policy (line-based being the default, see LineTransport) is the
// implementation's concern; the worker only sees whole messages.
//
// The connection worker is the sole caller, so implementations do not need
// to be safe for concurrent use. Close must be best-effort: safe after a
// failed Open, safe to call more than once, and it must never panic.
type Transport interface {
	// Open establishes the connection to the device.
	Open() error
	// Receive blocks until one message is available or the timeout elapses.
	// It returns ErrReadTimeout on timeout; any other error is a fault.
	Receive(timeout time.Duration) (string, error)
	// Send writes one message to the device.
	Send(text string) error
	// Close releases the connection.
	Close()
}
