package serialbridge

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// worker owns the Transport and runs the connect/operate/reconnect cycle on
// its own goroutine. All port I/O happens here; the consumer side only ever
// touches the queue pair and the stop signal.
type worker struct {
	transport Transport
	inbound   *msgQueue
	outbound  *msgQueue

	readTimeout    time.Duration
	reconnectDelay time.Duration
	sentinels      bool

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	dropped  *atomic.Uint64
	log      zerolog.Logger
}

// requestStop signals the worker to wind down. It returns immediately; the
// worker exits at its next loop boundary. Safe to call from any goroutine,
// any number of times.
func (w *worker) requestStop() {
	w.stopOnce.Do(func() { close(w.stop) })
}

func (w *worker) stopRequested() bool {
	select {
	case <-w.stop:
		return true
	default:
		return false
	}
}

// run drives the state machine until stop is requested:
// disconnected -> connecting -> connected -> failing -> disconnected.
// On exit it flushes the outbound queue once, best effort, then releases
// the transport.
func (w *worker) run() {
	defer close(w.done)

	for !w.stopRequested() {
		if err := w.transport.Open(); err != nil {
			w.log.Warn().Err(err).Msg("connect failed")
			w.fail()
			continue
		}
		w.log.Debug().Msg("connected")
		w.pushStatus(connectedSentinel)

		if err := w.operate(); err != nil {
			w.log.Warn().Err(err).Msg("connection lost")
			w.fail()
			continue
		}
		// Stop was requested while the session was healthy.
		break
	}

	w.flushOutbound()
	w.transport.Close()
	w.log.Debug().Msg("worker stopped")
}

// operate runs the steady-state cycle: at most one outbound write followed
// by one timed read per iteration, so neither direction starves the other.
// It returns nil when stop was requested and an error on any I/O fault.
func (w *worker) operate() error {
	for !w.stopRequested() {
		if msg, ok := w.outbound.TryDequeue(); ok {
			if err := w.transport.Send(msg.Text); err != nil {
				return err
			}
		}

		line, err := w.transport.Receive(w.readTimeout)
		switch {
		case err == nil:
			if !w.inbound.TryEnqueue(Data(line)) {
				w.log.Warn().
					Uint64("dropped", w.dropped.Inc()).
					Msg("inbound queue full, message dropped")
			}
		case errors.Is(err, ErrReadTimeout):
			// Idle tick, not a fault.
		default:
			return err
		}
	}
	return nil
}

// fail releases the transport, reports the disconnect, and backs off for
// the configured delay. The backoff wakes early when stop is requested.
func (w *worker) fail() {
	w.transport.Close()
	w.pushStatus(disconnectedSentinel)
	select {
	case <-w.stop:
	case <-time.After(w.reconnectDelay):
	}
}

// pushStatus enqueues a status sentinel, subject to the same capacity cap
// as data messages.
func (w *worker) pushStatus(m Message) {
	if !w.sentinels {
		return
	}
	if !w.inbound.TryEnqueue(m) {
		w.log.Warn().
			Uint64("dropped", w.dropped.Inc()).
			Str("status", m.Kind.String()).
			Msg("inbound queue full, status dropped")
	}
}

// flushOutbound drains whatever the consumer queued before stop. One pass,
// no retry; the first write error abandons the rest.
func (w *worker) flushOutbound() {
	for {
		msg, ok := w.outbound.TryDequeue()
		if !ok {
			return
		}
		if err := w.transport.Send(msg.Text); err != nil {
			w.log.Debug().Err(err).Msg("final flush abandoned")
			return
		}
	}
}
