package update_availability

import (
	"context"

	"github.com/m04kA/SMC-CeramicsBooking/internal/service/settings/models"
)

type SettingsService interface {
	UpdateAvailability(ctx context.Context, req *models.UpdateAvailabilityRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
