package delete_override

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CeramicsBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CeramicsBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CeramicsBooking/internal/service/settings"
	"github.com/m04kA/SMC-CeramicsBooking/internal/service/settings/models"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound      = "исключение на эту дату не найдено"
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

// Handle DELETE /api/v1/settings/overrides/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /settings/overrides/{date} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err := h.service.DeleteOverride(r.Context(), &models.DeleteOverrideRequest{AdminID: adminID, Date: date})
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrOverrideNotFound):
			h.logger.Warn("DELETE /settings/overrides/{date} - Override not found: date=%s", date)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("DELETE /settings/overrides/{date} - Invalid date: %s", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("DELETE /settings/overrides/{date} - Failed to delete override: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /settings/overrides/{date} - Override deleted successfully: date=%s, admin_id=%d",
		date, adminID)
	w.WriteHeader(http.StatusNoContent)
}
