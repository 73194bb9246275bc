package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// MinutesPerDay is the exclusive upper bound of a minute-of-day value.
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidTimeString is returned for values that are not strict HH:MM
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOutOfRange is returned when arithmetic leaves the [00:00, 24:00) window
	ErrTimeOutOfRange = errors.New("time is out of day range")
)

// TimeString is a wall-clock time of day with minute precision ("HH:MM").
// Internally it is stored as minutes since midnight; the zero value is "unset".
type TimeString struct {
	minutes int
	set     bool
}

// NewTimeString takes the wall-clock part of t, truncated to the minute
func NewTimeString(t time.Time) TimeString {
	return TimeString{minutes: t.Hour()*60 + t.Minute(), set: true}
}

// NewTimeStringFromMinutes builds a TimeString from minutes since midnight
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= MinutesPerDay {
		return TimeString{}, fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, minutes)
	}
	return TimeString{minutes: minutes, set: true}, nil
}

// NewTimeStringFromString parses a strict "HH:MM" value (hour 00-23, minute 00-59)
func NewTimeStringFromString(s string) (TimeString, error) {
	if len(s) != 5 || s[2] != ':' {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	hour, ok := twoDigits(s[0], s[1])
	if !ok || hour > 23 {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	minute, ok := twoDigits(s[3], s[4])
	if !ok || minute > 59 {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return TimeString{minutes: hour*60 + minute, set: true}, nil
}

// MustTimeString is NewTimeStringFromString that panics on error.
// Intended for constants and tests.
func MustTimeString(s string) TimeString {
	t, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return t
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// Minutes returns minutes since midnight
func (t TimeString) Minutes() int {
	return t.minutes
}

// IsZero reports whether the value was never set
func (t TimeString) IsZero() bool {
	return !t.set
}

// Validate checks that the value is set and lies within one day
func (t TimeString) Validate() error {
	if !t.set {
		return fmt.Errorf("%w: empty value", ErrInvalidTimeString)
	}
	if t.minutes < 0 || t.minutes >= MinutesPerDay {
		return fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, t.minutes)
	}
	return nil
}

// AddMinutes returns t shifted by n minutes. The result may be exactly 24:00
// (end of day) only as an exclusive bound, so it is rejected here.
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	return NewTimeStringFromMinutes(t.minutes + n)
}

// IsBefore reports whether t is strictly earlier than other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutes < other.minutes
}

// IsAfter reports whether t is strictly later than other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.minutes > other.minutes
}

// Equal reports whether both values denote the same minute
func (t TimeString) Equal(other TimeString) bool {
	return t.set == other.set && t.minutes == other.minutes
}

// On combines the time of day with the calendar date of d in d's location
func (t TimeString) On(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, t.minutes/60, t.minutes%60, 0, 0, d.Location())
}

func (t TimeString) String() string {
	if !t.set {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// MarshalText implements encoding.TextMarshaler
func (t TimeString) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *TimeString) UnmarshalText(data []byte) error {
	parsed, err := NewTimeStringFromString(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer, stored as "HH:MM" into a TIME column
func (t TimeString) Value() (driver.Value, error) {
	if !t.set {
		return nil, nil
	}
	return t.String(), nil
}

// Scan implements sql.Scanner. PostgreSQL returns TIME as "HH:MM:SS".
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = TimeString{}
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	if len(s) > 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
