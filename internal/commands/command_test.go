package commands

import (
	"errors"
	"testing"
)

func TestParseBareVerbs(t *testing.T) {
	for _, raw := range []string{"start", "stop", "reset", "  START  "} {
		cmd, err := Parse(raw)
		if err != nil {
			t.Fatalf("parse %q failed: %v", raw, err)
		}
		if cmd.Toggle != nil {
			t.Fatalf("bare verb carried toggle args: %+v", cmd)
		}
	}
}

func TestParseEnableMinutes(t *testing.T) {
	cmd, err := Parse("enable 15")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Type != TypeEnable || cmd.Toggle == nil || cmd.Toggle.Minutes != 15 || cmd.Toggle.EventID != "" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestParseDisableEvent(t *testing.T) {
	cmd, err := Parse("disable Kundun")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Type != TypeDisable || cmd.Toggle.EventID != "kundun" || cmd.Toggle.Minutes != 0 {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		raw  string
		code ErrorCode
	}{
		{"", ErrCodeEmptyInput},
		{"   ", ErrCodeEmptyInput},
		{"banish kundun", ErrCodeUnknownCommand},
		{"enable", ErrCodeInvalidArgument},
		{"enable -5", ErrCodeInvalidArgument},
		{"start now", ErrCodeInvalidArgument},
	}
	for _, tc := range cases {
		_, err := Parse(tc.raw)
		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) {
			t.Fatalf("parse %q: expected CommandError, got %v", tc.raw, err)
		}
		if cmdErr.Code != tc.code {
			t.Fatalf("parse %q: expected code %s, got %s", tc.raw, tc.code, cmdErr.Code)
		}
	}
}
