package oid

import (
	"encoding/hex"
	"strings"
	"testing"
	"time"
)

func TestNew_FormatAndUniqueness(t *testing.T) {
	seen := map[ID]struct{}{}
	for i := 0; i < 1000; i++ {
		id := New()
		if len(id) != 24 {
			t.Fatalf("expected 24 chars, got %d (%q)", len(id), id)
		}
		if _, err := hex.DecodeString(string(id)); err != nil {
			t.Fatalf("not hex: %q", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestNewAt_SortsByTime(t *testing.T) {
	earlier := NewAt(time.Unix(1_700_000_000, 0))
	later := NewAt(time.Unix(1_700_000_100, 0))
	if strings.Compare(string(earlier), string(later)) >= 0 {
		t.Fatalf("expected %q < %q", earlier, later)
	}
	if got := earlier.Timestamp().Unix(); got != 1_700_000_000 {
		t.Fatalf("timestamp mismatch: %d", got)
	}
}

func TestParse(t *testing.T) {
	id := New()
	parsed, err := Parse(string(id))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if parsed != id {
		t.Fatalf("roundtrip mismatch")
	}

	for _, bad := range []string{"", "abc", strings.Repeat("g", 24), strings.Repeat("a", 23)} {
		if _, err := Parse(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
