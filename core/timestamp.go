package core

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// timestampFormat is RFC3339 with millisecond precision. UTC values render
// with a literal "Z", so every timestamp leaving the API carries an explicit
// timezone.
const timestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Timestamp is a time.Time that is normalized to UTC on every boundary
// crossing: scanning from the database, serializing to JSON and writing back
// to the database. API models use it for createdAt/updatedAt so that nested
// (embedded) models are normalized recursively for free.
type Timestamp struct {
	time.Time
}

// At returns the Timestamp for t, normalized to UTC.
func At(t time.Time) Timestamp {
	return Timestamp{t.UTC()}
}

// Now returns the current time as a Timestamp.
func Now() Timestamp {
	return At(time.Now())
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(timestampFormat))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	t.Time = parsed.UTC()
	return nil
}

// Value implements driver.Valuer.
func (t Timestamp) Value() (driver.Value, error) {
	return t.UTC(), nil
}

// Scan implements sql.Scanner.
func (t *Timestamp) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		t.Time = time.Time{}
	case time.Time:
		t.Time = v.UTC()
	case string:
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return err
		}
		t.Time = parsed.UTC()
	case []byte:
		return t.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Timestamp", value)
	}
	return nil
}
