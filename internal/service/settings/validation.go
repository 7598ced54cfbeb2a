package settings

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/types"
)

// validateSlots проверяет время и технику каждого постоянного занятия
func validateSlots(slots []domain.SlotDefinition) error {
	for i, slot := range slots {
		if err := types.TimeString(slot.Time).Validate(); err != nil {
			return fmt.Errorf("%w: slot %d has invalid time %q", ErrInvalidInput, i, slot.Time)
		}
		if !slot.Technique.IsValid() {
			return fmt.Errorf("%w: slot %d has unknown technique %q", ErrInvalidInput, i, slot.Technique)
		}
	}
	return nil
}

// validateAvailability проверяет ключи дней недели и слоты
func validateAvailability(availability domain.WeeklyAvailability) error {
	for day, slots := range availability {
		if !domain.IsValidWeekday(day) {
			return fmt.Errorf("%w: unknown weekday %q", ErrInvalidInput, day)
		}
		if err := validateSlots(slots); err != nil {
			return fmt.Errorf("%s: %w", day, err)
		}
	}
	return nil
}

// parseOverrideDate проверяет формат YYYY-MM-DD
func parseOverrideDate(date string) (time.Time, error) {
	parsed, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}
	return parsed, nil
}

// normalizeSlots приводит время к виду "HH:MM", сохраняя nil
func normalizeSlots(slots []domain.SlotDefinition) []domain.SlotDefinition {
	if slots == nil {
		return nil
	}
	result := make([]domain.SlotDefinition, 0, len(slots))
	for _, slot := range slots {
		if normalized, ok := types.Normalize(slot.Time); ok {
			slot.Time = normalized.String()
		}
		result = append(result, slot)
	}
	return result
}
