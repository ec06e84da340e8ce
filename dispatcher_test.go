package serialbridge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversInOrder(t *testing.T) {
	b := New(Config{})
	b.inbound.TryEnqueue(connectedSentinel)
	b.inbound.TryEnqueue(Data("a"))
	b.inbound.TryEnqueue(Data("b"))
	b.inbound.TryEnqueue(disconnectedSentinel)

	var events []string
	d := NewDispatcher(b)
	d.OnConnect = func() { events = append(events, "connect") }
	d.OnDisconnect = func() { events = append(events, "disconnect") }
	d.OnLine = func(line string) { events = append(events, line) }

	require.Equal(t, 4, d.Pump(0))
	require.Equal(t, []string{"connect", "a", "b", "disconnect"}, events)

	require.Equal(t, 0, d.Pump(0), "queue should be drained")
}

func TestDispatcherRespectsMax(t *testing.T) {
	b := New(Config{})
	for _, text := range []string{"a", "b", "c"} {
		b.inbound.TryEnqueue(Data(text))
	}

	var events []string
	d := NewDispatcher(b)
	d.OnLine = func(line string) { events = append(events, line) }

	require.Equal(t, 2, d.Pump(2))
	require.Equal(t, []string{"a", "b"}, events)

	require.Equal(t, 1, d.Pump(2))
	require.Equal(t, []string{"a", "b", "c"}, events)
}

func TestDispatcherNilCallbacks(t *testing.T) {
	b := New(Config{})
	b.inbound.TryEnqueue(connectedSentinel)
	b.inbound.TryEnqueue(Data("a"))
	b.inbound.TryEnqueue(disconnectedSentinel)

	d := NewDispatcher(b)
	require.NotPanics(t, func() {
		require.Equal(t, 3, d.Pump(0))
	})
}
