package integration

import "sync"

// Broadcaster delivers every posted message to all subscribers, like the
// message events of a browser window.
type Broadcaster struct {
	mu          sync.Mutex
	subscribers map[chan any]struct{}
	buffer      int
}

func NewBroadcaster(buffer int) *Broadcaster {
	return &Broadcaster{subscribers: map[chan any]struct{}{}, buffer: buffer}
}

func (b *Broadcaster) Subscribe() (<-chan any, func()) {
	ch := make(chan any, b.buffer)

	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subscribers, ch)
			b.mu.Unlock()
		})
	}
}

// Post delivers data to every subscriber. A subscriber whose buffer is full
// misses the message.
func (b *Broadcaster) Post(data any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subscribers {
		select {
		case ch <- data:
		default:
		}
	}
}

// Subscribers returns the number of active subscribers.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.subscribers)
}
