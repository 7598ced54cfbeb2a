package set_override

import (
	"context"

	"github.com/m04kA/SMC-CeramicsBooking/internal/service/settings/models"
)

type SettingsService interface {
	SetOverride(ctx context.Context, req *models.SetOverrideRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
