package serialbridge

// Kind discriminates data lines from synthetic status messages. Status
// messages are recognized by this tag alone, never by payload text, so a
// device line that happens to read "connected" stays unambiguous.
type Kind int

const (
	// KindData is a line received from or destined for the device.
	KindData Kind = iota
	// KindConnected is enqueued once per successful (re)connection.
	KindConnected
	// KindDisconnected is enqueued once per lost or failed connection.
	KindDisconnected
)

func (k Kind) String() string {
	switch k {
	case KindConnected:
		return "connected"
	case KindDisconnected:
		return "disconnected"
	default:
		return "data"
	}
}

// Message is one unit of traffic between the device and the consumer.
// Data messages carry one line without its delimiter; status messages carry
// no text. A Message is immutable once enqueued.
type Message struct {
	Kind Kind
	Text string
}

// Data wraps a text line as a data message.
func Data(text string) Message {
	return Message{Kind: KindData, Text: text}
}

var (
	connectedSentinel    = Message{Kind: KindConnected}
	disconnectedSentinel = Message{Kind: KindDisconnected}
)
