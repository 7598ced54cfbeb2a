package get_schedule_settings

import (
	"net/http"

	"github.com/m04kA/SMC-CeramicsBooking/internal/api/handlers"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/settings/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.service.GetSchedule(r.Context())
	if err != nil {
		h.logger.Error("GET /settings/schedule - Failed to get schedule: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /settings/schedule - Schedule retrieved successfully: days=%d, overrides=%d",
		len(schedule.Availability), len(schedule.Overrides))
	handlers.RespondJSON(w, http.StatusOK, schedule)
}
