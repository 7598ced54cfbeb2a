package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/types"
)

// Policy ограничения на дату и время бронирования
type Policy struct {
	AdvanceBookingDays      int // 0 = без ограничения
	MinBookingNoticeMinutes int
}

// SlotRequest одно время бронирования
type SlotRequest struct {
	Date time.Time        // Дата (без времени)
	Time types.TimeString // Время начала, например "10:00"
}

// Request модель запроса на создание бронирования
type Request struct {
	Product              domain.Product
	Technique            *domain.Technique // Явно указанная техника (опционально)
	ParticipantCount     int
	Slots                []SlotRequest
	TechniqueAssignments []domain.ParticipantTechnique // Только для group_class

	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Notes         *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}

// seatRequest сколько мест и в какой технике занимает бронирование
type seatRequest struct {
	technique    domain.Technique
	participants int
}
