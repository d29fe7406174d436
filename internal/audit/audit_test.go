package audit

import (
	"path/filepath"
	"testing"
)

func TestRecordAndReadBackEvents(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "audit.db")
	log, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer log.Close()

	if err := log.Record("register", "op=in type=int"); err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if err := log.Record("lookup", "op=in type=int found=true"); err != nil {
		t.Fatalf("Record error: %v", err)
	}

	events, err := log.Events(log.SessionID())
	if err != nil {
		t.Fatalf("Events error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[0].Op != "register" || events[1].Op != "lookup" {
		t.Fatalf("events out of order: %#v", events)
	}
}

func TestEventsEmptyForUnknownSession(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "audit.db")
	log, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer log.Close()

	events, err := log.Events("does-not-exist")
	if err != nil {
		t.Fatalf("Events error: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("len(events) = %d, want 0", len(events))
	}
}
