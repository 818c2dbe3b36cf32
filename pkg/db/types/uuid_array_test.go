package dbtypes

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDArrayRoundTrip(t *testing.T) {
	ids := UUIDArray{uuid.New(), uuid.New()}

	value, err := ids.Value()
	if err != nil {
		t.Fatalf("unexpected Value error: %v", err)
	}

	var parsed UUIDArray
	if err := parsed.Scan(value); err != nil {
		t.Fatalf("unexpected Scan error: %v", err)
	}
	if len(parsed) != 2 || parsed[0] != ids[0] || parsed[1] != ids[1] {
		t.Fatalf("round trip mismatch: %v vs %v", parsed, ids)
	}
}

func TestUUIDArrayScanEmpty(t *testing.T) {
	var parsed UUIDArray
	if err := parsed.Scan("{}"); err != nil {
		t.Fatalf("unexpected Scan error: %v", err)
	}
	if len(parsed) != 0 {
		t.Fatalf("expected empty array, got %v", parsed)
	}
	if err := parsed.Scan(nil); err != nil {
		t.Fatalf("unexpected nil Scan error: %v", err)
	}
}

func TestUUIDArrayContains(t *testing.T) {
	member := uuid.New()
	ids := UUIDArray{member}
	if !ids.Contains(member) {
		t.Fatal("expected membership")
	}
	if ids.Contains(uuid.New()) {
		t.Fatal("unexpected membership")
	}
}
