package delete_override

import (
	"context"

	"github.com/m04kA/SMC-CeramicsBooking/internal/service/settings/models"
)

type SettingsService interface {
	DeleteOverride(ctx context.Context, req *models.DeleteOverrideRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
