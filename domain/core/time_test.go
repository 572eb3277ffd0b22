package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampJSON(t *testing.T) {
	data, err := json.Marshal(Timestamp{})
	if err != nil {
		t.Fatalf("marshal zero: %v", err)
	}
	if string(data) != "null" {
		t.Errorf("zero timestamp encoded as %s, want null", data)
	}

	ts := NewTimestamp(time.Date(2013, time.September, 10, 9, 39, 5, 0, time.UTC))
	data, err = json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2013-09-10T09:39:05Z"` {
		t.Errorf("got %s", data)
	}

	var back Timestamp
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Time().Equal(ts.Time()) {
		t.Errorf("round trip changed value: %s != %s", back, ts)
	}
	if (Timestamp{}).String() != "never" {
		t.Errorf("zero timestamp should print as never")
	}
}
