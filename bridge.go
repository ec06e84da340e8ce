package serialbridge

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// Defaults applied by New for Config fields left at their zero value.
const (
	DefaultBaudRate       = 115200
	DefaultDelimiter      = "\r\n"
	DefaultReadTimeout    = 50 * time.Millisecond
	DefaultReconnectDelay = time.Second
	DefaultMaxUnread      = 128
)

// ErrAlreadyStarted is returned by Start when the bridge is already running.
var ErrAlreadyStarted = errors.New("serialbridge: already started")

// Config holds configuration for a Bridge. It is copied at construction and
// immutable afterwards.
type Config struct {
	// Device is the serial device path, e.g. "/dev/ttyUSB0".
	Device string
	// BaudRate defaults to 115200.
	BaudRate int
	// Delimiter terminates each line on the wire, default "\r\n".
	Delimiter string
	// ReadTimeout bounds each read inside the operate cycle, default 50ms.
	// It also bounds how long a stop request can go unnoticed.
	ReadTimeout time.Duration
	// ReconnectDelay is the fixed backoff between connection attempts,
	// default 1s.
	ReconnectDelay time.Duration
	// MaxUnread caps the inbound queue, default 128. Messages read while
	// the queue is full are dropped.
	MaxUnread int
	// StatusSentinels enables synthetic connect/disconnect messages on the
	// inbound queue.
	StatusSentinels bool
	// Transport overrides the default line transport. Mainly for tests.
	Transport Transport
	// Logger defaults to a no-op logger.
	Logger *zerolog.Logger
}

// Bridge connects a polling consumer to a serial device through a background
// worker. Send and Poll never block and are safe to call from the consumer
// goroutine while the worker runs.
type Bridge struct {
	cfg      Config
	inbound  *msgQueue
	outbound *msgQueue
	worker   *worker
	started  atomic.Bool
	dropped  atomic.Uint64
	log      zerolog.Logger
}

// New creates a stopped Bridge with defaults applied.
func New(cfg Config) *Bridge {
	if cfg.BaudRate == 0 {
		cfg.BaudRate = DefaultBaudRate
	}
	if cfg.Delimiter == "" {
		cfg.Delimiter = DefaultDelimiter
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.ReconnectDelay == 0 {
		cfg.ReconnectDelay = DefaultReconnectDelay
	}
	if cfg.MaxUnread == 0 {
		cfg.MaxUnread = DefaultMaxUnread
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = cfg.Logger.With().Str("device", cfg.Device).Logger()
	}
	return &Bridge{
		cfg:      cfg,
		inbound:  newQueue(cfg.MaxUnread),
		outbound: newQueue(0),
		log:      logger,
	}
}

// Start launches the connection worker. Starting an already running bridge
// returns ErrAlreadyStarted.
func (b *Bridge) Start() error {
	if !b.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	transport := b.cfg.Transport
	if transport == nil {
		transport = NewLineTransport(b.cfg.Device, b.cfg.BaudRate, b.cfg.Delimiter)
	}
	b.worker = &worker{
		transport:      transport,
		inbound:        b.inbound,
		outbound:       b.outbound,
		readTimeout:    b.cfg.ReadTimeout,
		reconnectDelay: b.cfg.ReconnectDelay,
		sentinels:      b.cfg.StatusSentinels,
		stop:           make(chan struct{}),
		done:           make(chan struct{}),
		dropped:        &b.dropped,
		log:            b.log,
	}
	go b.worker.run()
	return nil
}

// Stop signals the worker to flush the outbound queue and release the port.
// It returns immediately; use Wait to await full teardown.
func (b *Bridge) Stop() {
	if b.worker != nil {
		b.worker.requestStop()
	}
}

// Wait blocks until the worker has exited. A no-op before Start.
func (b *Bridge) Wait() {
	if b.worker != nil {
		<-b.worker.done
	}
}

// Send queues a line for the device. It never blocks; the outbound queue is
// unbounded.
func (b *Bridge) Send(text string) {
	b.outbound.TryEnqueue(Data(text))
}

// Poll returns the next inbound message, or ok=false when none is queued.
// Call it once per consumer tick; it never blocks.
func (b *Bridge) Poll() (Message, bool) {
	return b.inbound.TryDequeue()
}

// Dropped reports how many inbound messages were discarded because the
// consumer fell behind.
func (b *Bridge) Dropped() uint64 {
	return b.dropped.Load()
}
