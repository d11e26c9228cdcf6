package content

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Activity records when an admin was last seen.
type Activity struct {
	mu       sync.Mutex
	lastSeen time.Time
	now      func() time.Time
}

func NewActivity() *Activity {
	return &Activity{now: time.Now}
}

func (a *Activity) Touch() {
	a.mu.Lock()
	a.lastSeen = a.now()
	a.mu.Unlock()
}

// Active reports whether Touch was called within window.
func (a *Activity) Active(window time.Duration) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.lastSeen.IsZero() {
		return false
	}
	return a.now().Sub(a.lastSeen) <= window
}

// Poller refreshes the engine on a fixed interval while an admin is active.
type Poller struct {
	engine   *Engine
	activity *Activity
	interval time.Duration
	idle     time.Duration
	logger   *slog.Logger
}

func NewPoller(engine *Engine, activity *Activity, interval, idle time.Duration, logger *slog.Logger) *Poller {
	return &Poller{
		engine:   engine,
		activity: activity,
		interval: interval,
		idle:     idle,
		logger:   logger.With("component", "poller"),
	}
}

// Run blocks until ctx is done.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("poller started", "interval", p.interval, "idle_timeout", p.idle)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("poller stopped")
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	if !p.activity.Active(p.idle) {
		return
	}
	p.engine.Refresh(ctx)
}
