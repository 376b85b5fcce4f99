package reschedule_encounter

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EncounterID <= 0 {
		return fmt.Errorf("%w: encounterID must be positive", ErrInvalidInput)
	}

	if !req.NewInterval.IsValid() {
		return fmt.Errorf("%w: scheduledStart must be before scheduledEnd", ErrInvalidInput)
	}

	if !req.NewInterval.SameDay() {
		return fmt.Errorf("%w: encounter must start and end on the same day", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что новая дата не в прошлом и не превышает
// ограничение advance_booking_days
func validateDate(interval domain.TimeRange, now time.Time, advanceBookingDays int) error {
	if domain.IsDateInPast(interval.Start, now) {
		return ErrInvalidDate
	}

	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := domain.DateOnly(now).AddDate(0, 0, advanceBookingDays)
	if domain.DateOnly(interval.Start).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateNotice проверяет, что перенос не нарушает min_notice_minutes
func validateNotice(interval domain.TimeRange, now time.Time, minNoticeMinutes int) error {
	if minNoticeMinutes == 0 {
		return nil
	}

	minAllowedStart := now.Add(time.Duration(minNoticeMinutes) * time.Minute)
	if interval.Start.Before(minAllowedStart) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	return nil
}
