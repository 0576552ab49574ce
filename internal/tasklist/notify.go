package tasklist

import (
	"sync"
	"time"
)

// DefaultMessageTTL is how long a message stays before it is cleared.
const DefaultMessageTTL = 3 * time.Second

type stopper interface {
	Stop() bool
}

// Notifier owns the message surface. A new message replaces the current one and
// restarts the clear timer, so only the most recent message's timer clears the surface.
type Notifier struct {
	surface MessageSurface
	ttl     time.Duration

	// afterFunc is time.AfterFunc outside tests.
	afterFunc func(d time.Duration, f func()) stopper

	mu    sync.Mutex
	gen   uint64
	timer stopper
}

func NewNotifier(surface MessageSurface, ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultMessageTTL
	}
	return &Notifier{
		surface: surface,
		ttl:     ttl,
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
	}
}

// Show displays text and schedules its removal.
func (n *Notifier) Show(text string, kind Kind) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.gen++
	gen := n.gen
	if n.timer != nil {
		n.timer.Stop()
	}
	n.surface.ShowMessage(text, kind)
	n.timer = n.afterFunc(n.ttl, func() { n.expire(gen) })
}

// expire clears the surface unless a newer message was shown since gen.
// Stop can lose the race with a timer that already fired, hence the check.
func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if gen != n.gen {
		return
	}
	n.timer = nil
	n.surface.ClearMessage()
}
