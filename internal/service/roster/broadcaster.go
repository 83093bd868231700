package roster

import (
	"sync"

	"github.com/shriajj/roster-backend-go/internal/domain/roster"
)

// Broadcaster fans change descriptors out to an unordered set of subscriber
// callbacks. Every mutation, local or remote-origin, goes through here.
type Broadcaster struct {
	mu   sync.Mutex
	next int
	subs map[int]roster.Listener
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]roster.Listener)}
}

// Subscribe registers fn and returns its unsubscribe function. Unsubscribing
// is idempotent and safe from within fn's own invocation.
func (b *Broadcaster) Subscribe(fn roster.Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	b.subs[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Notify invokes every current subscriber synchronously. Subscribers removed
// mid-broadcast (including by their own callback) are neither skipped nor
// invoked twice: membership is re-checked before each call.
func (b *Broadcaster) Notify(change roster.Change) {
	b.mu.Lock()
	ids := make([]int, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	b.mu.Unlock()

	for _, id := range ids {
		b.mu.Lock()
		fn, ok := b.subs[id]
		b.mu.Unlock()
		if ok {
			fn(change)
		}
	}
}

// Len returns the current subscriber count.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
