package kernel

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidPeriod is returned when a period ends before it starts.
var ErrInvalidPeriod = fmt.Errorf("%w: period ends before it starts", ErrValidation)

// Period is a range of timestamps. An empty end means the period never ends.
type Period struct {
	start Timestamp
	end   Timestamp
}

// NewPeriod validates that end does not lie before start.
func NewPeriod(start, end Timestamp) (Period, error) {
	if start.IsEmpty() {
		return Period{}, fmt.Errorf("%w: period needs a start", ErrValidation)
	}
	if !end.IsEmpty() && end.Before(start) {
		return Period{}, ErrInvalidPeriod
	}
	return Period{start: start, end: end}, nil
}

func (p Period) Start() Timestamp { return p.start }
func (p Period) End() Timestamp { return p.end }

// IsEndless reports whether the period has no end.
func (p Period) IsEndless() bool {
	return p.end.IsEmpty()
}

// Contains reports whether t lies within the period (inclusive).
func (p Period) Contains(t Timestamp) bool {
	if t.Before(p.start) {
		return false
	}
	return p.IsEndless() || !p.end.Before(t)
}

// TimeOfDay is a wall clock time formatted as HH:MM.
type TimeOfDay struct {
	hour   int
	minute int
	set    bool
}

// NewTimeOfDay validates hour and minute.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: invalid time %02d:%02d", ErrValidation, hour, minute)
	}
	return TimeOfDay{hour: hour, minute: minute, set: true}, nil
}

// ParseTimeOfDay parses HH:MM (seconds are ignored).
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return TimeOfDay{}, nil
	}
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return NewTimeOfDay(t.Hour(), t.Minute())
		}
	}
	return TimeOfDay{}, fmt.Errorf("%w: invalid time %q", ErrValidation, raw)
}

func (t TimeOfDay) IsEmpty() bool { return !t.set }
func (t TimeOfDay) Hour() int { return t.hour }
func (t TimeOfDay) Minute() int { return t.minute }

func (t TimeOfDay) String() string {
	if !t.set {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

func (t TimeOfDay) minutes() int {
	return t.hour*60 + t.minute
}

// MarshalJSON writes null for an empty time.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	if !t.set {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

// TimePeriod is a range of times within a day, in a timezone.
type TimePeriod struct {
	start    TimeOfDay
	end      TimeOfDay
	timezone string
}

// NewTimePeriod validates the times and the timezone name.
func NewTimePeriod(start, end TimeOfDay, timezone string) (TimePeriod, error) {
	if start.IsEmpty() {
		return TimePeriod{}, fmt.Errorf("%w: time period needs a start", ErrValidation)
	}
	if !end.IsEmpty() && end.minutes() < start.minutes() {
		return TimePeriod{}, ErrInvalidPeriod
	}
	if timezone == "" {
		timezone = "UTC"
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return TimePeriod{}, fmt.Errorf("%w: unknown timezone %q", ErrValidation, timezone)
	}
	return TimePeriod{start: start, end: end, timezone: timezone}, nil
}

func (p TimePeriod) Start() TimeOfDay { return p.start }
func (p TimePeriod) End() TimeOfDay { return p.end }
func (p TimePeriod) Timezone() string { return p.timezone }
func (p TimePeriod) IsEndless() bool { return p.end.IsEmpty() }

// Weekday numbers the days of the week from Monday (1) to Sunday (7).
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// NewWeekday validates the day number.
func NewWeekday(value int) (Weekday, error) {
	if value < int(Monday) || value > int(Sunday) {
		return 0, fmt.Errorf("%w: invalid weekday %d", ErrValidation, value)
	}
	return Weekday(value), nil
}

func (d Weekday) String() string {
	switch d {
	case Monday:
		return "monday"
	case Tuesday:
		return "tuesday"
	case Wednesday:
		return "wednesday"
	case Thursday:
		return "thursday"
	case Friday:
		return "friday"
	case Saturday:
		return "saturday"
	case Sunday:
		return "sunday"
	}
	return "unknown"
}
