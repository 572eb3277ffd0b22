package core

import (
	"testing"
)

// TestNewRequestIDUniqueness tests that NewRequestID generates unique identifiers
func TestNewRequestIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[RequestID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewRequestID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestRequestIDString tests ID string conversion
func TestRequestIDString(t *testing.T) {
	id := RequestID("test-123")
	if id.String() != "test-123" {
		t.Errorf("Expected String() to return 'test-123', got '%s'", id.String())
	}
}

// TestParseUserID tests numeric user id parsing
func TestParseUserID(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"10", 10, false},
		{" 11 ", 11, false},
		{"", 0, true},
		{"abc", 0, true},
		{"1.5", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseUserID(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseUserID(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseUserID(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseUserID(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// TestUserNotFoundWrapping tests sentinel matching through wrapping
func TestUserNotFoundWrapping(t *testing.T) {
	err := NewUserNotFoundError(1000)
	if !IsNotFound(err) {
		t.Errorf("Expected user-not-found error to match ErrNotFound")
	}
}
