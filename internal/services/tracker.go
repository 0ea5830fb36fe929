package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/devpulse/internal/models"
)

// FocusTracker drives a single in-progress focus timer. It is purely
// in-memory until Complete, which persists the accumulated time as a
// FocusSession. Safe for concurrent use (the ticker goroutine calls Tick
// while commands come from the prompt).
type FocusTracker struct {
	mu sync.Mutex

	svc FocusSessionService
	now func() time.Time

	startedAt time.Time
	task      string
	active    bool
	elapsed   int
}

func NewFocusTracker(svc FocusSessionService) *FocusTracker {
	return &FocusTracker{svc: svc, now: time.Now}
}

// Start begins a new timer for task, discarding any previous one.
func (t *FocusTracker) Start(task string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.startedAt = t.now()
	t.task = task
	t.active = true
	t.elapsed = 0
}

// Pause stops the timer from accumulating; the elapsed time is kept.
func (t *FocusTracker) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = false
}

// Resume continues a paused timer. A no-op when nothing was started.
func (t *FocusTracker) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.startedAt.IsZero() {
		t.active = true
	}
}

// Tick advances the timer by one second. Paused or idle timers ignore it.
func (t *FocusTracker) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active {
		t.elapsed++
	}
}

// Running reports whether a timer is active, along with its task and
// elapsed seconds.
func (t *FocusTracker) Running() (task string, elapsed int, active bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.task, t.elapsed, t.active
}

// Complete stops the timer and persists the accumulated time. Runs shorter
// than a minute are discarded without saving; the returned session is nil.
func (t *FocusTracker) Complete(ctx context.Context) (*models.FocusSession, error) {
	t.mu.Lock()
	if t.startedAt.IsZero() {
		t.mu.Unlock()
		return nil, nil
	}
	session := models.FocusSession{
		Date:      t.startedAt.UTC().Format(time.RFC3339),
		Duration:  (t.elapsed + 30) / 60,
		Task:      t.task,
		Completed: true,
	}
	t.reset()
	t.mu.Unlock()

	if session.Duration < 1 {
		return nil, nil
	}

	saved, err := t.svc.Save(ctx, session)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// Cancel discards the timer without saving.
func (t *FocusTracker) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reset()
}

func (t *FocusTracker) reset() {
	t.startedAt = time.Time{}
	t.task = ""
	t.active = false
	t.elapsed = 0
}
