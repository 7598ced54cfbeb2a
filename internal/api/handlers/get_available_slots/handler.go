package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CeramicsBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-CeramicsBooking/internal/usecase/get_available_slots"
)

const (
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingTechnique = "техника обязательна"
	msgInvalidTechnique = "неизвестная техника"
	msgInvalidCount     = "некорректное количество участников"
	msgInvalidTime      = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInput     = "некорректные параметры запроса"
	msgDateInPast       = "дата в прошлом"
	msgDateTooFar       = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date (required, YYYY-MM-DD), technique (required), participants (default 1), times (HH:MM,HH:MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	useCaseReq, err := ToUseCaseRequest(
		query.Get("date"),
		query.Get("technique"),
		query.Get("participants"),
		query.Get("times"),
	)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid query: %v", err)
		switch {
		case errors.Is(err, errMissingDate):
			handlers.RespondBadRequest(w, msgMissingDate)
		case errors.Is(err, errInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)
		case errors.Is(err, errMissingTechnique):
			handlers.RespondBadRequest(w, msgMissingTechnique)
		case errors.Is(err, errInvalidCount):
			handlers.RespondBadRequest(w, msgInvalidCount)
		default:
			handlers.RespondBadRequest(w, msgInvalidTime)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidTechnique):
			h.logger.Warn("GET /availability - Invalid technique: %s", useCaseReq.Technique)
			handlers.RespondBadRequest(w, msgInvalidTechnique)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /availability - Date in past: %s", query.Get("date"))
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /availability - Date too far in future: %s", query.Get("date"))
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /availability - Failed to resolve availability: date=%s, technique=%s, error=%v",
				query.Get("date"), useCaseReq.Technique, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Availability resolved: date=%s, technique=%s, participants=%d, slots_count=%d",
		query.Get("date"), result.Technique, result.Participants, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
