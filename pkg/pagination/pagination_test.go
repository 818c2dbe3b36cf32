package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeLimitBounds(t *testing.T) {
	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("expected default limit, got %d", got)
	}
	if got := NormalizeLimit(500); got != MaxLimit {
		t.Fatalf("expected max limit, got %d", got)
	}
	if got := LimitWithBuffer(10); got != 11 {
		t.Fatalf("expected buffered limit 11, got %d", got)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	cursor := Cursor{CreatedAt: time.Now().UTC().Truncate(time.Microsecond), ID: uuid.New()}
	encoded := EncodeCursor(cursor)

	decoded, err := ParseCursor(encoded)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if decoded.ID != cursor.ID {
		t.Fatalf("expected id %s, got %s", cursor.ID, decoded.ID)
	}
	if !decoded.CreatedAt.Equal(cursor.CreatedAt) {
		t.Fatalf("expected created at %v, got %v", cursor.CreatedAt, decoded.CreatedAt)
	}
}

func TestParseCursorRejectsGarbage(t *testing.T) {
	if _, err := ParseCursor("not-base64!"); err == nil {
		t.Fatal("expected error for invalid cursor")
	}
	if cursor, err := ParseCursor("  "); err != nil || cursor != nil {
		t.Fatalf("blank cursor should parse to nil, got %v / %v", cursor, err)
	}
}
