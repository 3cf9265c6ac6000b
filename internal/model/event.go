package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidDay       = errors.New("model: invalid day of week")
	ErrInvalidSpawnTime = errors.New("model: invalid spawn time")
	ErrNoRules          = errors.New("model: event has no spawn rules")
)

var dayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// ParseDay maps a day name from the event catalog to a time.Weekday.
// Matching is case-insensitive.
func ParseDay(raw string) (time.Weekday, error) {
	d, ok := dayNames[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDay, raw)
	}
	return d, nil
}

// SpawnRule is one weekly day/time combination at which an event spawns.
type SpawnRule struct {
	Day    time.Weekday
	Hour   int
	Minute int
}

func (r SpawnRule) Validate() error {
	if r.Day < time.Sunday || r.Day > time.Saturday {
		return fmt.Errorf("%w: %d", ErrInvalidDay, r.Day)
	}
	if r.Hour < 0 || r.Hour > 23 || r.Minute < 0 || r.Minute > 59 {
		return fmt.Errorf("%w: %02d:%02d", ErrInvalidSpawnTime, r.Hour, r.Minute)
	}
	return nil
}

func (r SpawnRule) String() string {
	return fmt.Sprintf("%s %02d:%02d", r.Day, r.Hour, r.Minute)
}

// NextOccurrence computes the next instant at which the rule fires, strictly
// after now. Seconds and sub-seconds are zeroed; a candidate at or before now
// rolls forward exactly one week, so a boundary instant never fires twice.
func (r SpawnRule) NextOccurrence(now time.Time) (time.Time, error) {
	if err := r.Validate(); err != nil {
		return time.Time{}, err
	}
	daysDiff := (int(r.Day) - int(now.Weekday()) + 7) % 7
	day := now.AddDate(0, 0, daysDiff)
	y, m, d := day.Date()
	candidate := time.Date(y, m, d, r.Hour, r.Minute, 0, 0, now.Location())
	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate, nil
}

// Event is a tracked boss with one or more weekly spawn rules. The ID is
// stable across catalog reloads so ledger keys and persisted activation
// entries stay valid.
type Event struct {
	ID    string
	Name  string
	Rules []SpawnRule
}

func (e Event) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("model: event id is required")
	}
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("model: event name is required")
	}
	for _, r := range e.Rules {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("event %s: %w", e.ID, err)
		}
	}
	return nil
}

// NextOccurrence returns the earliest next occurrence across all rules.
func (e Event) NextOccurrence(now time.Time) (time.Time, error) {
	if len(e.Rules) == 0 {
		return time.Time{}, fmt.Errorf("%w: %s", ErrNoRules, e.ID)
	}
	var next time.Time
	for _, r := range e.Rules {
		candidate, err := r.NextOccurrence(now)
		if err != nil {
			return time.Time{}, fmt.Errorf("event %s: %w", e.ID, err)
		}
		if next.IsZero() || candidate.Before(next) {
			next = candidate
		}
	}
	return next, nil
}
