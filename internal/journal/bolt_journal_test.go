package journal

import (
	"fmt"
	"testing"
	"time"
)

func TestBoltJournalRecordsAndListsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	jnlRaw, err := New("bbolt", dir+"/journal.db", Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer jnlRaw.Close()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		err := jnlRaw.Record(Entry{
			CapabilityID: fmt.Sprintf("cap-%d", i),
			Outcome:      "ok",
			Price:        "$0.01",
			OccurredAt:   base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := jnlRaw.Recent(3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, want := range []string{"cap-4", "cap-3", "cap-2"} {
		if entries[i].CapabilityID != want {
			t.Fatalf("entries[%d] = %q, want %q", i, entries[i].CapabilityID, want)
		}
	}
}

func TestBoltJournalExpiresOldEntries(t *testing.T) {
	dir := t.TempDir()
	jnlRaw, err := openBolt(dir+"/journal.db", Options{
		EntryTTL:        time.Second,
		CleanupInterval: time.Second,
	})
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	jnl := jnlRaw.(*boltJournal)
	defer jnl.Close()

	old := Entry{CapabilityID: "old", Outcome: "ok", OccurredAt: time.Now().Add(-time.Minute)}
	if err := jnl.Record(old); err != nil {
		t.Fatalf("Record old: %v", err)
	}

	// Fast-forward the cleanup cadence so the next write triggers expiry.
	jnl.lastCleanup.Store(time.Now().Add(-2 * time.Second).Unix())

	fresh := Entry{CapabilityID: "fresh", Outcome: "ok"}
	if err := jnl.Record(fresh); err != nil {
		t.Fatalf("Record fresh: %v", err)
	}

	entries, err := jnl.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 || entries[0].CapabilityID != "fresh" {
		t.Fatalf("expected only the fresh entry, got %#v", entries)
	}
}

func TestBoltJournalFillsOccurredAt(t *testing.T) {
	dir := t.TempDir()
	jnl, err := New("bbolt", dir+"/journal.db", Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer jnl.Close()

	if err := jnl.Record(Entry{CapabilityID: "x", Outcome: "ok"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	entries, err := jnl.Recent(1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 || entries[0].OccurredAt.IsZero() {
		t.Fatalf("OccurredAt was not filled: %#v", entries)
	}
}

func TestNewSupportsNoop(t *testing.T) {
	jnl, err := New("none", "", Options{})
	if err != nil {
		t.Fatalf("New none: %v", err)
	}
	if err := jnl.Record(Entry{CapabilityID: "x"}); err != nil {
		t.Fatalf("noop Record: %v", err)
	}
	entries, err := jnl.Recent(5)
	if err != nil || entries != nil {
		t.Fatalf("noop Recent: %v %v", entries, err)
	}
}

func TestNewRejectsUnknownType(t *testing.T) {
	if _, err := New("redis", "", Options{}); err == nil {
		t.Fatalf("expected error for unknown journal type")
	}
}

func TestNewBoltRequiresPath(t *testing.T) {
	if _, err := New("bbolt", "  ", Options{}); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
