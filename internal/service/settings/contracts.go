package settings

import (
	"context"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	GetSchedule(ctx context.Context) (domain.WeeklyAvailability, domain.ScheduleOverrides, error)
	GetScheduleOverrides(ctx context.Context) (domain.ScheduleOverrides, error)
	SaveAvailability(ctx context.Context, availability domain.WeeklyAvailability) error
	SaveScheduleOverrides(ctx context.Context, overrides domain.ScheduleOverrides) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
