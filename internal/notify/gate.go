package notify

import "time"

// DefaultWindow is wide enough to cover one poll interval plus scheduler
// jitter while staying well under the gap between adjacent thresholds.
const DefaultWindow = 30 * time.Second

// Gate decides whether a lead-time warning is due. A threshold T arms during
// [occurrence-T, occurrence-T+window); the ledger is the backstop if two
// polls ever land inside the same window.
type Gate struct {
	Window time.Duration
}

func NewGate(window time.Duration) Gate {
	if window <= 0 {
		window = DefaultWindow
	}
	return Gate{Window: window}
}

// ShouldFire reports whether key is due at now, and records it when it is.
// For a fixed key it returns true at most once across any sequence of calls
// with non-decreasing now.
func (g Gate) ShouldFire(key Key, occurrence, now time.Time, ledger *Ledger) bool {
	if !g.inWindow(key.Threshold, occurrence, now) {
		return false
	}
	if ledger.Contains(key) {
		return false
	}
	ledger.Record(key, now)
	return true
}

// FirstDue evaluates thresholds from largest to smallest and fires the first
// one that is due, skipping the rest for this tick. Smaller thresholds catch
// up on later ticks when their own windows open.
func (g Gate) FirstDue(eventID string, occurrence, now time.Time, thresholds []int, ledger *Ledger) (int, bool) {
	for _, minutes := range sortedDescending(thresholds) {
		key := Key{EventID: eventID, Occurrence: occurrence, Threshold: minutes}
		if g.ShouldFire(key, occurrence, now, ledger) {
			return minutes, true
		}
	}
	return 0, false
}

func (g Gate) inWindow(thresholdMinutes int, occurrence, now time.Time) bool {
	remaining := occurrence.Sub(now)
	threshold := time.Duration(thresholdMinutes) * time.Minute
	return remaining <= threshold && remaining > threshold-g.Window
}

func sortedDescending(thresholds []int) []int {
	out := make([]int, len(thresholds))
	copy(out, thresholds)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] > out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
