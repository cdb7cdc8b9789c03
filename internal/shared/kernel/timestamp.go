package kernel

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// TimestampLayout is the textual form of a timestamp.
	TimestampLayout = "2006-01-02 15:04:05"
	// DateLayout is the textual form of a date.
	DateLayout = "2006-01-02"
)

// Timestamp is a point in time stored in UTC with second precision.
// The zero value is an empty timestamp.
type Timestamp struct {
	t time.Time
}

// Now returns the current time.
func Now() Timestamp {
	return NewTimestamp(time.Now())
}

// NewTimestamp converts t to UTC with second precision.
func NewTimestamp(t time.Time) Timestamp {
	if t.IsZero() {
		return Timestamp{}
	}
	return Timestamp{t: t.UTC().Truncate(time.Second)}
}

// TimestampFromPtr converts a nullable column value.
func TimestampFromPtr(t *time.Time) Timestamp {
	if t == nil {
		return Timestamp{}
	}
	return NewTimestamp(*t)
}

// ParseTimestamp accepts TimestampLayout and RFC 3339. An empty string results in an empty timestamp.
func ParseTimestamp(raw string) (Timestamp, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Timestamp{}, nil
	}
	for _, layout := range []string{TimestampLayout, time.RFC3339, DateLayout} {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return NewTimestamp(t), nil
		}
	}
	return Timestamp{}, fmt.Errorf("%w: invalid timestamp %q", ErrValidation, raw)
}

// IsEmpty reports whether no time is set.
func (t Timestamp) IsEmpty() bool {
	return t.t.IsZero()
}

// Time returns the UTC time.
func (t Timestamp) Time() time.Time {
	return t.t
}

// Ptr returns nil for an empty timestamp.
func (t Timestamp) Ptr() *time.Time {
	if t.IsEmpty() {
		return nil
	}
	value := t.t
	return &value
}

// Add returns the timestamp moved by d.
func (t Timestamp) Add(d time.Duration) Timestamp {
	if t.IsEmpty() {
		return t
	}
	return Timestamp{t: t.t.Add(d)}
}

// IsPast reports whether the timestamp lies before now. Empty timestamps are never in the past.
func (t Timestamp) IsPast() bool {
	return !t.IsEmpty() && t.t.Before(time.Now())
}

// Before reports whether t lies before other.
func (t Timestamp) Before(other Timestamp) bool {
	return t.t.Before(other.t)
}

func (t Timestamp) String() string {
	if t.IsEmpty() {
		return ""
	}
	return t.t.Format(TimestampLayout)
}

// MarshalJSON writes null for an empty timestamp.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsEmpty() {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts null or any layout supported by ParseTimestamp.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*t = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(*raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Date is a calendar day without time.
type Date struct {
	t time.Time
}

// NewDate truncates t to its calendar day.
func NewDate(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	year, month, day := t.Date()
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateFromPtr converts a nullable column value.
func DateFromPtr(t *time.Time) Date {
	if t == nil {
		return Date{}
	}
	return NewDate(*t)
}

// ParseDate parses DateLayout.
func ParseDate(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Date{}, nil
	}
	t, err := time.ParseInLocation(DateLayout, raw, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("%w: invalid date %q", ErrValidation, raw)
	}
	return NewDate(t), nil
}

func (d Date) IsEmpty() bool { return d.t.IsZero() }
func (d Date) Time() time.Time { return d.t }

// Ptr returns nil for an empty date.
func (d Date) Ptr() *time.Time {
	if d.IsEmpty() {
		return nil
	}
	value := d.t
	return &value
}

func (d Date) String() string {
	if d.IsEmpty() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// MarshalJSON writes null for an empty date.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsEmpty() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts null or DateLayout.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(*raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TraceableTime keeps track of creation and modification of an entity.
// UpdatedAt only changes through MarkForUpdate.
type TraceableTime struct {
	CreatedAt Timestamp
	UpdatedAt Timestamp
}

// NewTraceableTime stamps the creation time with now.
func NewTraceableTime() TraceableTime {
	return TraceableTime{CreatedAt: Now()}
}

// TraceableTimeFrom builds the value from row columns.
func TraceableTimeFrom(createdAt time.Time, updatedAt *time.Time) TraceableTime {
	return TraceableTime{CreatedAt: NewTimestamp(createdAt), UpdatedAt: TimestampFromPtr(updatedAt)}
}

// MarkForUpdate returns a copy with UpdatedAt set to now.
func (t TraceableTime) MarkForUpdate() TraceableTime {
	t.UpdatedAt = Now()
	return t
}
