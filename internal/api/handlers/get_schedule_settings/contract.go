package get_schedule_settings

import (
	"context"

	"github.com/m04kA/SMC-CeramicsBooking/internal/service/settings/models"
)

type SettingsService interface {
	GetSchedule(ctx context.Context) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
