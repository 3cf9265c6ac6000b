package activation

import "testing"

func TestSnapshotIsIsolatedFromLaterWrites(t *testing.T) {
	initial := NewSet()
	initial.Events["kundun"] = true
	initial.Thresholds[15] = true
	store := NewStore(initial)

	snap := store.Snapshot()
	store.SetEvent("kundun", false)
	store.SetThreshold(15, false)
	store.SetThreshold(5, true)

	if !snap.Events["kundun"] {
		t.Fatalf("snapshot mutated by later SetEvent")
	}
	if !snap.Thresholds[15] || snap.Thresholds[5] {
		t.Fatalf("snapshot mutated by later SetThreshold")
	}

	next := store.Snapshot()
	if next.Events["kundun"] || next.Thresholds[15] || !next.Thresholds[5] {
		t.Fatalf("next snapshot missing writes: %+v", next)
	}
}

func TestEnabledThresholds(t *testing.T) {
	set := NewSet()
	set.Thresholds[15] = true
	set.Thresholds[5] = false
	set.Thresholds[30] = true

	enabled := set.EnabledThresholds()
	if len(enabled) != 2 {
		t.Fatalf("expected 2 enabled thresholds, got %v", enabled)
	}
	seen := map[int]bool{}
	for _, m := range enabled {
		seen[m] = true
	}
	if !seen[15] || !seen[30] {
		t.Fatalf("unexpected enabled set: %v", enabled)
	}
}

func TestStoreInitialSetIsCopied(t *testing.T) {
	initial := NewSet()
	initial.Events["zaikan"] = true
	store := NewStore(initial)

	initial.Events["zaikan"] = false
	if !store.Snapshot().Events["zaikan"] {
		t.Fatalf("store aliased the caller's map")
	}
}
