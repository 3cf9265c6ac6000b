package source

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const catalogFixture = `[
  {
    "id": "kundun",
    "name": "Kundun",
    "spawn_times": [
      {"day": "Wednesday", "time": "14:00"},
      {"day": "Saturday", "time": "22:30"}
    ]
  },
  {
    "name": "Golden Erohim",
    "spawn_times": [
      {"day": "Monday", "time": "08:00"}
    ]
  }
]`

func TestParseCatalog(t *testing.T) {
	events, err := Parse([]byte(catalogFixture))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	kundun := events[0]
	if kundun.ID != "kundun" || len(kundun.Rules) != 2 {
		t.Fatalf("unexpected first event: %+v", kundun)
	}
	if kundun.Rules[1].Day != time.Saturday || kundun.Rules[1].Hour != 22 || kundun.Rules[1].Minute != 30 {
		t.Fatalf("unexpected rule: %+v", kundun.Rules[1])
	}

	// Missing id derives a stable slug from the name.
	if events[1].ID != "golden-erohim" {
		t.Fatalf("unexpected derived id: %q", events[1].ID)
	}
}

func TestParseSkipsMalformedSpawnEntry(t *testing.T) {
	raw := `[{"id":"zaikan","name":"Zaikan","spawn_times":[
		{"day":"Fryday","time":"18:00"},
		{"day":"Friday","time":"25:00"},
		{"day":"Friday","time":"18:00"}
	]}]`
	events, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if len(events[0].Rules) != 1 {
		t.Fatalf("expected only the valid rule to survive, got %+v", events[0].Rules)
	}
}

func TestParseNonLatinNamesGetDistinctStableIDs(t *testing.T) {
	raw := `[
		{"name":"魔王","spawn_times":[{"day":"Monday","time":"08:00"}]},
		{"name":"龍神","spawn_times":[{"day":"Tuesday","time":"09:00"}]}
	]`
	events, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].ID == "" || events[1].ID == "" {
		t.Fatalf("empty derived id: %+v", events)
	}
	if events[0].ID == events[1].ID {
		t.Fatalf("distinct bosses share id %q", events[0].ID)
	}

	// Ids must not change across reloads.
	again, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if again[0].ID != events[0].ID || again[1].ID != events[1].ID {
		t.Fatalf("ids changed across reloads: %+v vs %+v", events, again)
	}
}

func TestParseSkipsDuplicateIDs(t *testing.T) {
	raw := `[
		{"id":"kundun","name":"Kundun","spawn_times":[{"day":"Wednesday","time":"14:00"}]},
		{"id":"kundun","name":"Kundun Shadow","spawn_times":[{"day":"Friday","time":"18:00"}]}
	]`
	events, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected duplicate id to be skipped, got %d events", len(events))
	}
	if events[0].Name != "Kundun" {
		t.Fatalf("expected the first entry to win, got %+v", events[0])
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"not":"an array"`)); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatalf("expected error for missing catalog")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boss_data.json")
	if err := os.WriteFile(path, []byte(catalogFixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	events, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
}
