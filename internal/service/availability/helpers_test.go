package availability

import (
	"time"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
)

var (
	tuesday   = time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	wednesday = time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	thursday  = time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)
)

func technique(t domain.Technique) *domain.Technique {
	return &t
}

func activeBooking(id int64, t domain.Technique, participants int, slots ...domain.BookingSlot) *domain.Booking {
	return &domain.Booking{
		ID:               id,
		Technique:        technique(t),
		ParticipantCount: participants,
		Slots:            slots,
		Status:           domain.StatusActive,
	}
}

func slot(date time.Time, at string) domain.BookingSlot {
	return domain.BookingSlot{Date: date.Format(domain.DateFormat), Time: at}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateFormat, s)
}
