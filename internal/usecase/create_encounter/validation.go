package create_encounter

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PatientID <= 0 {
		return fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}

	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}

	if !req.Interval.IsValid() {
		return fmt.Errorf("%w: scheduledStart must be before scheduledEnd", ErrInvalidInput)
	}

	// Приём не может пересекать границу суток: слоты и блокировки дневные
	if !req.Interval.SameDay() {
		return fmt.Errorf("%w: encounter must start and end on the same day", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(req.ResourceIDs))
	for _, id := range req.ResourceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: resource id must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate resource id=%d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}

// validateDate проверяет, что дата приёма не в прошлом и не превышает
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

// validateNotice проверяет, что бронирование не нарушает min_notice_minutes
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
