package content

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"portfolio/logger"
)

func TestActivity(t *testing.T) {
	a := NewActivity()
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return now }

	assert.False(t, a.Active(time.Minute), "never touched")

	a.Touch()
	assert.True(t, a.Active(time.Minute))

	now = now.Add(2 * time.Minute)
	assert.False(t, a.Active(time.Minute))
}

func TestPoller_RefreshesOnlyWhileAdminActive(t *testing.T) {
	store := newFakeStore(samplePosts()...)
	e := newTestEngine(t, store)
	a := NewActivity()
	p := NewPoller(e, a, 10*time.Millisecond, time.Minute, logger.Discard())

	p.tick(context.Background())
	assert.Zero(t, store.count("list"), "no admin, no refresh")

	a.Touch()
	p.tick(context.Background())
	assert.Equal(t, 1, store.count("list"))
	assert.False(t, e.Snapshot().Loading)
}

func TestPoller_RunStopsWithContext(t *testing.T) {
	store := newFakeStore(samplePosts()...)
	e := newTestEngine(t, store)
	a := NewActivity()
	a.Touch()
	p := NewPoller(e, a, 5*time.Millisecond, time.Minute, logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return store.count("list") >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop")
	}
}
