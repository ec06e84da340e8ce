// Package serialbridge connects a blocking, line-oriented serial device
// (e.g. an Arduino over USB) to a non-blocking consumer such as a game
// engine's frame loop.
//
// A background worker owns the physical port and drives a
// connect/operate/reconnect cycle; the consumer exchanges messages with it
// through a pair of thread-safe FIFO queues. The consumer side never blocks:
// Send always queues, Poll always returns immediately, and a slow consumer
// sheds load by dropping the newest inbound messages once the queue is full.
//
// Features:
//   - Automatic reconnect with a fixed, configurable backoff
//   - Read timeouts treated as idle, not as disconnects
//   - Bounded inbound queue with an observable drop counter
//   - In-band connect/disconnect status messages, tagged by kind
//   - Pluggable Transport; line framing over go.bug.st/serial by default
//   - PTY-based tests for reliability
//
// Example usage:
//
//	b := serialbridge.New(serialbridge.Config{
//	    Device:          "/dev/ttyUSB0",
//	    BaudRate:        115200,
//	    StatusSentinels: true,
//	})
//	if err := b.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	b.Send("C,START")
//
//	// Once per frame:
//	for {
//	    msg, ok := b.Poll()
//	    if !ok {
//	        break
//	    }
//	    switch msg.Kind {
//	    case serialbridge.KindConnected:
//	        fmt.Println("device attached")
//	    case serialbridge.KindDisconnected:
//	        fmt.Println("device lost")
//	    default:
//	        fmt.Println("received:", msg.Text)
//	    }
//	}
//
//	// On shutdown:
//	b.Stop()
//	b.Wait()
package serialbridge
