package serialbridge

// Dispatcher adapts the poll-based Bridge to push-style delivery. Assign the
// callbacks, then call Pump once per tick: it drains queued messages and
// fires the callbacks in arrival order, on the caller's goroutine. Nil
// callbacks skip delivery for that kind without disturbing the order.
type Dispatcher struct {
	bridge *Bridge

	OnLine       func(string)
	OnConnect    func()
	OnDisconnect func()
}

// NewDispatcher wraps an existing Bridge. The Bridge stays usable directly;
// mixing Poll and Pump on the same bridge is allowed but each message is
// delivered through only one of them.
func NewDispatcher(b *Bridge) *Dispatcher {
	return &Dispatcher{bridge: b}
}

// Pump delivers up to max queued messages and returns the number delivered.
// max <= 0 drains everything currently queued.
func (d *Dispatcher) Pump(max int) int {
	delivered := 0
	for max <= 0 || delivered < max {
		msg, ok := d.bridge.Poll()
		if !ok {
			break
		}
		delivered++
		switch msg.Kind {
		case KindConnected:
			if d.OnConnect != nil {
				d.OnConnect()
			}
		case KindDisconnected:
			if d.OnDisconnect != nil {
				d.OnDisconnect()
			}
		default:
			if d.OnLine != nil {
				d.OnLine(msg.Text)
			}
		}
	}
	return delivered
}
