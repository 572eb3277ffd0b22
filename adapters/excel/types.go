package excel

import (
	"presence-analyzer/domain/presence"
)

// presenceFieldCount is the number of fields of a well-formed presence row:
// user_id, date, start, end
const presenceFieldCount = 4

// PresenceRow is one fully parsed presence row
type PresenceRow struct {
	UserID int
	Date   presence.Date
	Record presence.Record
}

// ReadStats summarizes one pass over a presence file
type ReadStats struct {
	Rows      int // rows seen
	Skipped   int // rows with a field count other than 4
	Malformed int // rows with 4 fields that failed to parse
	Loaded    int // rows committed to the table
}
