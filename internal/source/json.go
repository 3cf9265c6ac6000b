package source

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"os"
	"strconv"
	"strings"

	"github.com/bosswatch/bosswatch/internal/logging"
	"github.com/bosswatch/bosswatch/internal/model"
)

type spawnEntry struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

type eventEntry struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	SpawnTimes []spawnEntry `json:"spawn_times"`
}

// LoadFile reads the event catalog. A missing or malformed file is fatal for
// the caller; a single bad spawn entry is skipped with a log line so the rest
// of the catalog survives.
func LoadFile(path string) ([]model.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: read event catalog %s: %w", path, err)
	}
	events, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("source: parse event catalog %s: %w", path, err)
	}
	return events, nil
}

// Parse decodes the catalog JSON: an array of events, each with a list of
// day/time spawn entries.
func Parse(data []byte) ([]model.Event, error) {
	var entries []eventEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	out := make([]model.Event, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			logging.Info("skipping catalog entry without a name")
			continue
		}
		id := strings.TrimSpace(entry.ID)
		if id == "" {
			id = slugify(name)
		}
		if id == "" {
			id = hashID(name)
		}
		if seen[id] {
			logging.Info("skipping catalog entry with duplicate id", "id", id, "name", name)
			continue
		}
		seen[id] = true
		event := model.Event{ID: id, Name: name}
		for _, spawn := range entry.SpawnTimes {
			rule, err := parseRule(spawn)
			if err != nil {
				logging.Error("skipping malformed spawn entry", err, "event", id)
				continue
			}
			event.Rules = append(event.Rules, rule)
		}
		out = append(out, event)
	}
	return out, nil
}

func parseRule(entry spawnEntry) (model.SpawnRule, error) {
	day, err := model.ParseDay(entry.Day)
	if err != nil {
		return model.SpawnRule{}, err
	}
	hour, minute, err := parseClock(entry.Time)
	if err != nil {
		return model.SpawnRule{}, err
	}
	rule := model.SpawnRule{Day: day, Hour: hour, Minute: minute}
	return rule, rule.Validate()
}

func parseClock(raw string) (int, int, error) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", model.ErrInvalidSpawnTime, raw)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", model.ErrInvalidSpawnTime, raw)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", model.ErrInvalidSpawnTime, raw)
	}
	return hour, minute, nil
}

// slugify derives a stable id from the event name for catalog entries that
// lack one; the id must not change across reloads.
func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

// hashID covers names whose slug is empty (no ASCII letters or digits, e.g.
// fully non-Latin names). FNV keeps the id deterministic across reloads.
func hashID(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	return fmt.Sprintf("boss-%08x", h.Sum32())
}
