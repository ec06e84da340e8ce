package serialbridge

import "sync"

// msgQueue is a FIFO queue safe for concurrent use by one producer and one
// consumer goroutine. A capacity of 0 means unbounded. Channels are not used
// here because the outbound queue has no capacity limit.
type msgQueue struct {
	mu       sync.Mutex
	items    []Message
	capacity int
}

func newQueue(capacity int) *msgQueue {
	return &msgQueue{capacity: capacity}
}

// TryEnqueue appends m and reports whether it was accepted. It returns false
// without inserting when a bounded queue is at capacity.
func (q *msgQueue) TryEnqueue(m Message) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.capacity > 0 && len(q.items) >= q.capacity {
		return false
	}
	q.items = append(q.items, m)
	return true
}

// TryDequeue removes and returns the oldest message, or ok=false when the
// queue is empty. It never blocks.
func (q *msgQueue) TryDequeue() (Message, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return Message{}, false
	}
	m := q.items[0]
	q.items[0] = Message{}
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return m, true
}

func (q *msgQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
