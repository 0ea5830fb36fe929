// Package sync contains the local-first synchronization core: the
// connectivity monitor and the sync engine orchestrating dual writes,
// offline queueing, queue replay and read reconciliation.
package sync

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/devpulse/internal/logging"
)

// Prober reports whether the remote backend is reachable right now.
type Prober interface {
	Probe(ctx context.Context) error
}

// Connectivity is the read side of the monitor, as consumed by the engine.
type Connectivity interface {
	Online() bool
	Subscribe(fn func(online bool))
}

// Monitor tracks online/offline state and notifies subscribers on
// transitions. Notifications are edge-triggered and not debounced: rapid
// flapping produces multiple notifications, so subscribers must be
// idempotent with respect to repeated identical-state events.
type Monitor struct {
	mu     sync.Mutex
	online bool
	subs   []func(online bool)
	log    logging.Logger
}

// NewMonitor returns a monitor that starts offline.
func NewMonitor(log logging.Logger) *Monitor {
	return &Monitor{log: log}
}

// Online returns the current reachability state.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Subscribe registers a transition callback. Callbacks run synchronously on
// the goroutine that observed the transition.
func (m *Monitor) Subscribe(fn func(online bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// Set records a new reachability state, notifying subscribers only when the
// state actually changed.
func (m *Monitor) Set(ctx context.Context, online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	subs := make([]func(bool), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	if online {
		m.log.Info(ctx, "connectivity changed", "mode", "online")
	} else {
		m.log.Info(ctx, "connectivity changed", "mode", "offline")
	}

	for _, fn := range subs {
		fn(online)
	}
}

// Watch probes reachability once immediately and then on every tick of
// interval, feeding the results into Set. It blocks until ctx is done.
func (m *Monitor) Watch(ctx context.Context, p Prober, interval time.Duration) {
	m.Set(ctx, p.Probe(ctx) == nil)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Set(ctx, p.Probe(ctx) == nil)
		case <-ctx.Done():
			return
		}
	}
}
