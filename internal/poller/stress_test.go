package poller

import (
	"sync"
	"testing"
	"time"

	"github.com/bosswatch/bosswatch/internal/notify"
)

// Exercises the UI-writes-while-poller-reads path; mainly useful under -race.
func TestConcurrentTogglesDuringPolling(t *testing.T) {
	src := newFakeSource(map[string]bool{"kundun": true, "zaikan": true}, map[int]bool{15: true, 5: true})
	e := NewEngine(Config{
		Interval:  5 * time.Millisecond,
		Window:    30 * time.Second,
		Retention: 45 * time.Minute,
	}, testEvents, src, notify.NewLedger(), &captureNotifier{})

	e.Start(true)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			src.mu.Lock()
			src.set.Events["kundun"] = i%2 == 0
			src.set.Thresholds[5] = i%3 == 0
			src.mu.Unlock()
		}
	}()

	// Drain channels so the loop never backs up.
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-e.notices:
			case <-e.status:
			case <-done:
				return
			}
		}
	}()

	wg.Wait()
	time.Sleep(20 * time.Millisecond)
	e.Stop()
	close(done)

	if e.State() != StateStopped {
		t.Fatalf("expected stopped, got %s", e.State())
	}
}
