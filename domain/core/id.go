package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// RequestID identifies one inbound HTTP request in logs and responses
type RequestID string

// NewRequestID creates a time-ordered identifier using UUID v7
func NewRequestID() RequestID {
	// Falls back to v4 if v7 fails
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return RequestID(id.String())
}

// String returns the string representation
func (id RequestID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id RequestID) IsEmpty() bool {
	return id == ""
}

// ParseUserID parses the numeric employee identifier used by the presence file
func ParseUserID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("user ID cannot be empty")
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID %q: %w", s, err)
	}
	return id, nil
}
