package telemetry

import (
	"path/filepath"
	"testing"
)

func TestOpenRecordEventAndStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.db")
	sink, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer sink.Close()

	if err := sink.RecordEvent(1, "birth", "player 1 hatched"); err != nil {
		t.Fatalf("record event: %v", err)
	}
	if err := sink.RecordTickStats(1, 1, 3, 0); err != nil {
		t.Fatalf("record stats: %v", err)
	}
	if err := sink.RecordTickStats(1, 2, 2, 1); err != nil {
		t.Fatalf("re-record stats for same tick should upsert: %v", err)
	}
}
