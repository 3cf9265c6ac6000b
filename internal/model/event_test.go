package model

import (
	"errors"
	"testing"
	"time"
)

func TestNextOccurrenceLaterSameDay(t *testing.T) {
	rule := SpawnRule{Day: time.Monday, Hour: 14, Minute: 30}
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.Local) // Monday morning

	next, err := rule.NextOccurrence(now)
	if err != nil {
		t.Fatalf("next occurrence failed: %v", err)
	}
	if next.Format("2006-01-02 15:04:05") != "2026-08-31 14:30:00" {
		t.Fatalf("unexpected occurrence: %s", next.Format(time.RFC3339))
	}
}

func TestNextOccurrenceLaterInWeek(t *testing.T) {
	rule := SpawnRule{Day: time.Wednesday, Hour: 14, Minute: 0}
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.Local) // Monday 09:00

	next, err := rule.NextOccurrence(now)
	if err != nil {
		t.Fatalf("next occurrence failed: %v", err)
	}
	if next.Format("2006-01-02 15:04") != "2026-09-02 14:00" {
		t.Fatalf("expected Wednesday 14:00 same week, got %s", next.Format(time.RFC3339))
	}
}

func TestNextOccurrencePassedRollsOneWeek(t *testing.T) {
	rule := SpawnRule{Day: time.Monday, Hour: 8, Minute: 0}
	now := time.Date(2026, 8, 31, 8, 0, 5, 0, time.Local) // Monday 08:00:05

	next, err := rule.NextOccurrence(now)
	if err != nil {
		t.Fatalf("next occurrence failed: %v", err)
	}
	if next.Format("2006-01-02 15:04:05") != "2026-09-07 08:00:00" {
		t.Fatalf("expected next Monday 08:00, got %s", next.Format(time.RFC3339))
	}
	if !next.After(now) {
		t.Fatalf("occurrence not strictly in the future: %s", next)
	}
}

func TestNextOccurrenceBoundaryRollsForward(t *testing.T) {
	rule := SpawnRule{Day: time.Friday, Hour: 20, Minute: 0}
	now := time.Date(2026, 9, 4, 20, 0, 0, 0, time.Local) // exactly Friday 20:00

	next, err := rule.NextOccurrence(now)
	if err != nil {
		t.Fatalf("next occurrence failed: %v", err)
	}
	if !next.Equal(now.AddDate(0, 0, 7)) {
		t.Fatalf("boundary instant must roll a full week, got %s", next.Format(time.RFC3339))
	}
}

func TestNextOccurrenceIsPure(t *testing.T) {
	rule := SpawnRule{Day: time.Sunday, Hour: 0, Minute: 15}
	now := time.Date(2026, 9, 3, 23, 59, 59, 0, time.Local)

	first, err := rule.NextOccurrence(now)
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	second, err := rule.NextOccurrence(now)
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if !first.Equal(second) {
		t.Fatalf("repeated calls diverged: %s vs %s", first, second)
	}
}

func TestEventNextOccurrencePicksEarliestRule(t *testing.T) {
	event := Event{
		ID:   "kundun",
		Name: "Kundun",
		Rules: []SpawnRule{
			{Day: time.Saturday, Hour: 22, Minute: 0},
			{Day: time.Wednesday, Hour: 14, Minute: 0},
		},
	}
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.Local) // Monday

	next, err := event.NextOccurrence(now)
	if err != nil {
		t.Fatalf("event next occurrence failed: %v", err)
	}
	if next.Weekday() != time.Wednesday {
		t.Fatalf("expected Wednesday rule to win, got %s", next.Weekday())
	}
}

func TestEventNextOccurrenceRequiresRules(t *testing.T) {
	event := Event{ID: "empty", Name: "Empty"}
	if _, err := event.NextOccurrence(time.Now()); !errors.Is(err, ErrNoRules) {
		t.Fatalf("expected ErrNoRules, got %v", err)
	}
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay(" Wednesday ")
	if err != nil {
		t.Fatalf("parse day failed: %v", err)
	}
	if d != time.Wednesday {
		t.Fatalf("expected Wednesday, got %s", d)
	}
	if _, err := ParseDay("Midweek"); !errors.Is(err, ErrInvalidDay) {
		t.Fatalf("expected ErrInvalidDay, got %v", err)
	}
}

func TestSpawnRuleValidate(t *testing.T) {
	if err := (SpawnRule{Day: time.Monday, Hour: 24, Minute: 0}).Validate(); !errors.Is(err, ErrInvalidSpawnTime) {
		t.Fatalf("expected ErrInvalidSpawnTime, got %v", err)
	}
	if err := (SpawnRule{Day: time.Monday, Hour: 13, Minute: 60}).Validate(); !errors.Is(err, ErrInvalidSpawnTime) {
		t.Fatalf("expected ErrInvalidSpawnTime, got %v", err)
	}
	if err := (SpawnRule{Day: time.Friday, Hour: 23, Minute: 59}).Validate(); err != nil {
		t.Fatalf("valid rule rejected: %v", err)
	}
}
