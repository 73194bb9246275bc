package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SpaceBookingService/pkg/types"
)

// ValidatePurpose checks the trimmed purpose length in characters
func ValidatePurpose(purpose string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(purpose))
	if n < MinPurposeLength || n > MaxPurposeLength {
		return fmt.Errorf("%w: must be %d-%d characters, got %d", ErrInvalidPurpose, MinPurposeLength, MaxPurposeLength, n)
	}
	return nil
}

// ValidateDate rejects dates before today and dates more than advanceDays ahead
// (0 means no horizon). now must already be in the venue's time zone.
func ValidateDate(date time.Time, now time.Time, advanceDays int) error {
	today := NormalizeDate(now)
	date = NormalizeDate(date)

	if date.Before(today) {
		return fmt.Errorf("%w: %s", ErrPastSchedule, date.Format(DateFormat))
	}
	if advanceDays > 0 && date.After(today.AddDate(0, 0, advanceDays)) {
		return fmt.Errorf("%w: at most %d days ahead", ErrBeyondHorizon, advanceDays)
	}
	return nil
}

// ValidateSchedule is ValidateDate that also rejects a start time already passed today
func ValidateSchedule(date time.Time, start types.TimeString, now time.Time, advanceDays int) error {
	if err := ValidateDate(date, now, advanceDays); err != nil {
		return err
	}
	if SameDate(date, now) && start.IsBefore(types.NewTimeString(now)) {
		return fmt.Errorf("%w: start %s has already passed", ErrPastSchedule, start)
	}
	return nil
}
