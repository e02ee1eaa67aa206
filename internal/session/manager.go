package session

import (
	"context"
	"log"
	"sync"
	"time"
)

// Manager runs the periodic expiry sweep over both session slots. A stale
// slot is cleared (writing the logout audit record) and the onExpire
// callback is invoked so the owning layer can surface a sign-out notice.
type Manager struct {
	store    Store
	interval time.Duration
	onExpire func(kind Kind, s Session)

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewManager(store Store, interval time.Duration, onExpire func(Kind, Session)) *Manager {
	return &Manager{
		store:    store,
		interval: interval,
		onExpire: onExpire,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop. Call Stop before tearing down the store so
// a late tick cannot act on stale state.
func (m *Manager) Start() {
	go func() {
		defer close(m.done)

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.sweep(time.Now())
			case <-m.stop:
				return
			}
		}
	}()
}

// Stop cancels the sweep loop and waits for the current pass to finish.
// Safe to call more than once.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
	<-m.done
}

func (m *Manager) sweep(now time.Time) {
	for _, kind := range []Kind{KindUser, KindAdmin} {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		m.sweepSlot(ctx, kind, now)
		cancel()
	}
}

func (m *Manager) sweepSlot(ctx context.Context, kind Kind, now time.Time) {
	sess, err := m.store.Load(ctx, kind)
	if err != nil {
		log.Println("[SESSION] [ERROR] sweep load failed:", err)
		return
	}
	if sess == nil || sess.Valid(now) {
		return
	}

	audit, err := m.store.Clear(ctx, kind)
	if err != nil {
		log.Println("[SESSION] [ERROR] sweep clear failed:", err)
		return
	}
	if audit != nil {
		log.Printf("[SESSION] [INFO] %s session expired after %ds, slot cleared", kind, audit.DurationSeconds)
	}
	if m.onExpire != nil {
		m.onExpire(kind, *sess)
	}
}
