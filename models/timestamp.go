package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// timestampLayouts lists the string formats the API has been seen to use
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Timestamp is a point in time decoded from any of the API's encodings:
// {"json_class":"Time","s":N,"n":M}, "2006-01-02 15:04", RFC 3339 strings
// or bare unix seconds. A null value (or a null "s") yields the zero time.
type Timestamp struct {
	time.Time
}

// rubyTime is the serialized form of a Ruby Time object
type rubyTime struct {
	Seconds *int64 `json:"s"`
	Nanos   int64  `json:"n"`
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	switch data[0] {
	case '{':
		var rt rubyTime
		if err := json.Unmarshal(data, &rt); err != nil {
			return fmt.Errorf("invalid timestamp object: %w", err)
		}
		if rt.Seconds == nil {
			t.Time = time.Time{}
			return nil
		}
		t.Time = time.Unix(*rt.Seconds, rt.Nanos).UTC()
		return nil

	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			t.Time = time.Time{}
			return nil
		}
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				t.Time = parsed.UTC()
				return nil
			}
		}
		return fmt.Errorf("unrecognized timestamp %q", s)

	default:
		secs, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("unrecognized timestamp %s", data)
		}
		t.Time = time.Unix(secs, 0).UTC()
		return nil
	}
}

// MarshalJSON encodes the timestamp as RFC 3339, or null when unset
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}
