package token

import (
	"sync"
	"time"
)

// DefaultBudget is the default per-tick time budget for background
// tokenization: long enough to make real progress, short enough not to
// compete noticeably with input handling on the same goroutine.
const DefaultBudget = 20 * time.Millisecond

// Scheduler drives a Store's background tokenization using
// time.AfterFunc rather than a dedicated goroutine loop, so it imposes
// no cost at all while there is nothing to tokenize (HasLinesToTokenize
// returns false and the scheduler simply never reschedules itself).
type Scheduler struct {
	mu      sync.Mutex
	store   *Store
	budget  time.Duration
	timer   *time.Timer
	stopped bool
	onTick  func()
}

// NewScheduler creates a scheduler for store. onTick, if non-nil, is
// invoked after every batch of tokenization so a caller can fire a
// repaint/change event; it runs on the scheduler's own goroutine.
func NewScheduler(store *Store, budget time.Duration, onTick func()) *Scheduler {
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &Scheduler{store: store, budget: budget, onTick: onTick}
}

// Schedule arms the scheduler to run a tokenization batch soon, if one
// isn't already pending and there is work to do. Safe to call after
// every edit; redundant calls are no-ops.
func (s *Scheduler) Schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.timer != nil || !s.store.HasLinesToTokenize() {
		return
	}
	s.timer = time.AfterFunc(0, s.tick)
}

func (s *Scheduler) tick() {
	deadline := time.Now().Add(s.budget)
	for s.store.HasLinesToTokenize() && time.Now().Before(deadline) {
		if !s.store.TokenizeOneLine() {
			break
		}
	}
	if s.onTick != nil {
		s.onTick()
	}

	s.mu.Lock()
	s.timer = nil
	more := !s.stopped && s.store.HasLinesToTokenize()
	if more {
		s.timer = time.AfterFunc(0, s.tick)
	}
	s.mu.Unlock()
}

// Stop prevents any further ticks. A tick already in flight finishes
// its current batch but will not reschedule itself.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
