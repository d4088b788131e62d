package sim

import (
	"sync"
	"time"
)

// DefaultTickInterval is how often a Runner advances the price.
const DefaultTickInterval = 200 * time.Millisecond

// Runner advances an engine on a timer until the session is over or the
// runner is closed.
type Runner struct {
	engine   *Engine
	interval time.Duration

	closed    chan struct{}
	closeOnce sync.Once
	done      chan struct{}
}

// NewRunner starts advancing e immediately, so the history holds the seed
// price by the time the first interval elapses.
func NewRunner(e *Engine, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	r := &Runner{
		engine:   e,
		interval: interval,
		closed:   make(chan struct{}),
		done:     make(chan struct{}),
	}

	go r.run()

	return r
}

func (r *Runner) run() {
	defer close(r.done)

	if !r.engine.Advance() {
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.closed:
			return
		case <-ticker.C:
			if !r.engine.Advance() {
				return
			}
		}
	}
}

// Done is closed when the loop has exited.
func (r *Runner) Done() <-chan struct{} { return r.done }

// Close stops the loop and waits for it to exit. It is safe to call more
// than once.
func (r *Runner) Close() {
	r.closeOnce.Do(func() {
		close(r.closed)
	})
	<-r.done
}
