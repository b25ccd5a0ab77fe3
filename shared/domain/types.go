package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type (
	ThreadId     = string
	PredictionId = string
	UserName     = string
)

// MaxPredictionsPerUser caps how many predictions one author can submit on a single thread.
const MaxPredictionsPerUser = 3

// TimestampLayout is how timestamps are persisted in the document.
const TimestampLayout = "2006-01-02 15:04:05"

// Timestamp is a time persisted as local wall-clock text.
// RFC 3339 values are accepted on decode as well.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.Truncate(time.Second)}
}

func (t Timestamp) String() string {
	return t.Format(TimestampLayout)
}

// MarshalJSON overrides the RFC 3339 encoding promoted from time.Time.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid timestamp %s", data)
	}
	s = strings.TrimSpace(s)
	if parsed, err := time.ParseInLocation(TimestampLayout, s, time.Local); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q", s)
	}
	t.Time = parsed
	return nil
}
