package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
	"github.com/m04kA/SMC-CeramicsBooking/internal/service/availability"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByFilter получает бронирования, у которых есть слот на дату фильтра
	GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// SettingsRepository интерфейс репозитория настроек мастерской
type SettingsRepository interface {
	// GetSchedule получает недельное расписание постоянных занятий и исключения
	GetSchedule(ctx context.Context) (domain.WeeklyAvailability, domain.ScheduleOverrides, error)
}

// SlotResolver проверка доступности слотов
type SlotResolver interface {
	Resolve(snapshot availability.Snapshot, query availability.Query) []domain.SlotAvailability
}

// DecisionObserver счетчик решений по причине блокировки
type DecisionObserver interface {
	ObserveDecision(reason string)
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

type nopObserver struct{}

func (nopObserver) ObserveDecision(string) {}
