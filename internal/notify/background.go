package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type badge struct {
	userID int64
	total  int
}

// Background pushes badge values off the caller's goroutine, one at a time.
// While a push is in flight only the newest waiting value is kept.
type Background struct {
	notifier Notifier
	timeout  time.Duration

	mu      sync.Mutex
	running bool
	pending *badge
}

// NewBackground bounds every push by timeout.
func NewBackground(n Notifier, timeout time.Duration) *Background {
	return &Background{notifier: n, timeout: timeout}
}

func (b *Background) Push(userID int64, total int) {
	b.mu.Lock()
	b.pending = &badge{userID: userID, total: total}
	if b.running {
		b.mu.Unlock()
		return
	}
	b.running = true
	b.mu.Unlock()
	go b.drain()
}

func (b *Background) drain() {
	for {
		b.mu.Lock()
		next := b.pending
		b.pending = nil
		if next == nil {
			b.running = false
			b.mu.Unlock()
			return
		}
		b.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
		err := b.notifier.UnreadChanged(ctx, next.userID, next.total)
		cancel()
		if err != nil {
			log.Warn().Err(err).Int64("user_id", next.userID).Msg("Unread badge push failed")
		}
	}
}
