package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
)

var (
	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrTooLateToBook возвращается, когда до начала занятия осталось меньше minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrInvalidTechnique возвращается, когда технику бронирования не удалось определить
	ErrInvalidTechnique = errors.New("create_booking: cannot determine technique")

	// ErrInvalidAssignments возвращается при некорректном распределении участников по техникам
	ErrInvalidAssignments = errors.New("create_booking: invalid technique assignments")

	// ErrSlotNotAvailable возвращается, когда одно из времени бронирования недоступно
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// SlotUnavailableError описывает первое заблокированное время бронирования.
// errors.Is(err, ErrSlotNotAvailable) возвращает true.
type SlotUnavailableError struct {
	Date   string
	Time   string
	Reason domain.BlockedReason
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("%s: %s %s (%s)", ErrSlotNotAvailable, e.Date, e.Time, e.Reason)
}

func (e *SlotUnavailableError) Is(target error) bool {
	return target == ErrSlotNotAvailable
}
