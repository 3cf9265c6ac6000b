package notify

import (
	"sync"
	"time"
)

// Key identifies one lead-time warning for one concrete occurrence. Two
// occurrences of the same event (this week vs. next week) produce distinct
// keys, so firing is never suppressed across weeks.
type Key struct {
	EventID    string
	Occurrence time.Time
	Threshold  int
}

// Ledger records already-fired keys. Only the poll loop writes to it; the
// mutex covers diagnostic reads from the UI and the daily-reset clear.
type Ledger struct {
	mu    sync.Mutex
	fired map[Key]time.Time
}

func NewLedger() *Ledger {
	return &Ledger{fired: make(map[Key]time.Time)}
}

func (l *Ledger) Record(key Key, firedAt time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.fired[key]; ok {
		return
	}
	l.fired[key] = firedAt
}

func (l *Ledger) Contains(key Key) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.fired[key]
	return ok
}

// Prune drops entries whose occurrence is more than retention in the past.
// Callers must keep retention at or above the largest enabled threshold plus
// the arming window, so a key can never be pruned while its window could
// still be re-evaluated.
func (l *Ledger) Prune(now time.Time, retention time.Duration) int {
	cutoff := now.Add(-retention)
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for key := range l.fired {
		if key.Occurrence.Before(cutoff) {
			delete(l.fired, key)
			removed++
		}
	}
	return removed
}

// Clear wholesale-resets the ledger. Used by the optional day-rollover job.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fired = make(map[Key]time.Time)
}

func (l *Ledger) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fired)
}
