// Package presence holds the data model of the attendance dashboard:
// per-day presence records, the table they are grouped into, and the
// derived per-weekday statistics.
package presence

import (
	"sort"
)

// DaysInWeek is the number of weekday buckets, Monday first.
const DaysInWeek = 7

// Record is one user's presence on one calendar date.
// End before Start is tolerated and yields a negative interval.
type Record struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// UserRecords maps each date to the presence record of a single user.
type UserRecords map[Date]Record

// Table maps user ids to their records. A table is built fresh on every
// load and must not be mutated once handed out.
type Table map[int]UserRecords

// Buckets holds signed intervals in seconds, one slice per weekday.
type Buckets [DaysInWeek][]int

// SortedDates returns the dates of the records in ascending order.
func (r UserRecords) SortedDates() []Date {
	dates := make([]Date, 0, len(r))
	for d := range r {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// UserIDs returns the user ids present in the table in ascending order.
func (t Table) UserIDs() []int {
	ids := make([]int, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Lookup returns the records of one user.
func (t Table) Lookup(userID int) (UserRecords, bool) {
	records, ok := t[userID]
	return records, ok
}

// Add stores a record, replacing an earlier record for the same date.
func (t Table) Add(userID int, date Date, record Record) {
	records, ok := t[userID]
	if !ok {
		records = make(UserRecords)
		t[userID] = records
	}
	records[date] = record
}

// RecordCount returns the total number of records across all users.
func (t Table) RecordCount() int {
	n := 0
	for _, records := range t {
		n += len(records)
	}
	return n
}

// User is the metadata of one employee from the users XML file.
type User struct {
	ID        string `json:"user_id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar"`
}
