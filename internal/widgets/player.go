package widgets

import (
	"context"
	"sync"
	"time"
)

// Player runs a repeating tick for as long as it is started and its parent
// context is alive. Every exit path (Stop, parent cancellation) releases
// the underlying ticker and goroutine.
type Player struct {
	interval time.Duration
	tick     func(ctx context.Context)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPlayer creates a stopped player that calls tick every interval. The
// context passed to tick is cancelled when the player stops, so a tick that
// blocks on delivery must select on it.
func NewPlayer(interval time.Duration, tick func(ctx context.Context)) *Player {
	return &Player{interval: interval, tick: tick}
}

// Start launches the tick loop bound to ctx. Starting a running player is a
// no-op.
func (p *Player) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.tick(ctx)
			}
		}
	}()
}

// Stop cancels the loop and waits for it to exit. Safe to call repeatedly
// and on a player that was never started.
func (p *Player) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the tick loop is active.
func (p *Player) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done == nil {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}
