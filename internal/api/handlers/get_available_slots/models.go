package get_available_slots

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-CeramicsBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/types"
)

var (
	errMissingDate      = errors.New("date is required")
	errInvalidDate      = errors.New("invalid date format")
	errMissingTechnique = errors.New("technique is required")
	errInvalidCount     = errors.New("invalid participants")
	errInvalidTime      = errors.New("invalid time")
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date         string         `json:"date"`
	Technique    string         `json:"technique"`
	Participants int            `json:"participants"`
	FixedTimes   []string       `json:"fixedTimes"`
	Slots        []SlotDecision `json:"slots"`
}

// SlotDecision решение по одному времени
type SlotDecision struct {
	Time           string `json:"time"`
	CanBook        bool   `json:"canBook"`
	BlockedReason  string `json:"blockedReason"`
	BookedCount    int    `json:"bookedCount"`
	AvailableCount int    `json:"availableCount"`
}

// ToUseCaseRequest создает запрос use case из query параметров
// participants по умолчанию 1, times - список через запятую
func ToUseCaseRequest(dateStr, technique, participantsStr, timesStr string) (*getAvailableSlots.Request, error) {
	if dateStr == "" {
		return nil, errMissingDate
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	if technique == "" {
		return nil, errMissingTechnique
	}

	participants := 1
	if participantsStr != "" {
		participants, err = strconv.Atoi(participantsStr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidCount, err)
		}
	}

	var times []types.TimeString
	if timesStr != "" {
		for _, raw := range strings.Split(timesStr, ",") {
			t, err := types.NewTimeStringFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", errInvalidTime, raw)
			}
			times = append(times, t)
		}
	}

	return &getAvailableSlots.Request{
		Date:         date,
		Technique:    domain.Technique(technique),
		Participants: participants,
		Times:        times,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailabilityResponse {
	fixed := make([]string, len(resp.FixedTimes))
	for i, t := range resp.FixedTimes {
		fixed[i] = t.String()
	}

	slots := make([]SlotDecision, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotDecision{
			Time:           slot.Time.String(),
			CanBook:        slot.CanBook,
			BlockedReason:  string(slot.BlockedReason),
			BookedCount:    slot.BookedCount,
			AvailableCount: slot.AvailableCount,
		}
	}

	return &AvailabilityResponse{
		Date:         resp.Date.Format(domain.DateFormat),
		Technique:    string(resp.Technique),
		Participants: resp.Participants,
		FixedTimes:   fixed,
		Slots:        slots,
	}
}
