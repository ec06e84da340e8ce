package serialbridge

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.bug.st/serial"
)

const readChunkSize = 4096

var errPortClosed = errors.New("serialbridge: port not open")

// LineTransport frames traffic as delimiter-terminated text lines over a
// physical serial port. Partial input is carried across Receive calls, so a
// line split over several reads is never lost.
type LineTransport struct {
	device    string
	baudRate  int
	delimiter string
	port      serial.Port
	pending   string
	buf       []byte
}

// NewLineTransport returns a line-framed Transport for the named device.
// The port is not opened until Open is called.
func NewLineTransport(device string, baudRate int, delimiter string) *LineTransport {
	return &LineTransport{
		device:    device,
		baudRate:  baudRate,
		delimiter: delimiter,
		buf:       make([]byte, readChunkSize),
	}
}

// Open opens the serial port in 8N1 mode at the configured baud rate.
func (t *LineTransport) Open() error {
	port, err := serial.Open(t.device, &serial.Mode{
		BaudRate: t.baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return fmt.Errorf("open %s: %w", t.device, err)
	}
	t.port = port
	t.pending = ""
	return nil
}

// Receive reads until one full line is available or the timeout elapses.
// The returned line has its delimiter stripped.
func (t *LineTransport) Receive(timeout time.Duration) (string, error) {
	if t.port == nil {
		return "", errPortClosed
	}
	if line, ok := t.takeLine(); ok {
		return line, nil
	}
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return "", ErrReadTimeout
		}
		if err := t.port.SetReadTimeout(remaining); err != nil {
			return "", fmt.Errorf("set read timeout: %w", err)
		}
		n, err := t.port.Read(t.buf)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", t.device, err)
		}
		if n == 0 {
			// go.bug.st/serial reports an expired read timeout as (0, nil).
			return "", ErrReadTimeout
		}
		t.pending += string(t.buf[:n])
		if line, ok := t.takeLine(); ok {
			return line, nil
		}
	}
}

func (t *LineTransport) takeLine() (string, bool) {
	idx := strings.Index(t.pending, t.delimiter)
	if idx < 0 {
		return "", false
	}
	line := t.pending[:idx]
	t.pending = t.pending[idx+len(t.delimiter):]
	return line, true
}

// Send writes the line followed by the configured delimiter.
func (t *LineTransport) Send(text string) error {
	if t.port == nil {
		return errPortClosed
	}
	if _, err := t.port.Write([]byte(text + t.delimiter)); err != nil {
		return fmt.Errorf("write %s: %w", t.device, err)
	}
	return nil
}

// Close releases the port. Safe to call multiple times and after a failed
// Open; subsequent calls are no-ops.
func (t *LineTransport) Close() {
	if t.port == nil {
		return
	}
	_ = t.port.Close()
	t.port = nil
}
