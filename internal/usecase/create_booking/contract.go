package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
	"github.com/m04kA/SMC-CeramicsBooking/internal/service/availability"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	// LockSlot блокирует ключ до конца текущей транзакции
	LockSlot(ctx context.Context, key string) error
}

// SettingsRepository интерфейс репозитория настроек мастерской
type SettingsRepository interface {
	GetSchedule(ctx context.Context) (domain.WeeklyAvailability, domain.ScheduleOverrides, error)
}

// SlotChecker проверка одного времени для части бронирования.
// participants - места одной группы, groupSize - все участники бронирования.
type SlotChecker interface {
	CheckPart(
		snapshot availability.Snapshot,
		date time.Time,
		at types.TimeString,
		technique domain.Technique,
		participants int,
		groupSize int,
	) domain.SlotAvailability
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Mailer отправка подтверждения клиенту
type Mailer interface {
	SendBookingConfirmation(ctx context.Context, booking *domain.Booking) error
}

// BookingObserver счетчик созданных бронирований
type BookingObserver interface {
	ObserveBookingCreated(technique string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
