package settings

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
)

// settingRow строка таблицы settings
type settingRow struct {
	Key       string    `db:"key"`
	Value     []byte    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

// slotDefinitionJSON {"time": "10:00", "technique": "potters_wheel"}
type slotDefinitionJSON struct {
	Time      string `json:"time"`
	Technique string `json:"technique"`
}

// overrideJSON {"slots": null} закрывает день, {"slots": [...]} заменяет расписание
type overrideJSON struct {
	Slots []slotDefinitionJSON `json:"slots"`
}

func decodeAvailability(data []byte) (domain.WeeklyAvailability, error) {
	var raw map[string][]slotDefinitionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, domain.SettingsKeyAvailability, err)
	}

	result := make(domain.WeeklyAvailability, len(raw))
	for day, slots := range raw {
		result[day] = toDomainSlots(slots)
	}
	return result, nil
}

func encodeAvailability(availability domain.WeeklyAvailability) ([]byte, error) {
	raw := make(map[string][]slotDefinitionJSON, len(availability))
	for day, slots := range availability {
		raw[day] = fromDomainSlots(slots)
		if raw[day] == nil {
			raw[day] = []slotDefinitionJSON{}
		}
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrEncode, domain.SettingsKeyAvailability, err)
	}
	return data, nil
}

func decodeOverrides(data []byte) (domain.ScheduleOverrides, error) {
	var raw map[string]*overrideJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, domain.SettingsKeyScheduleOverrides, err)
	}

	result := make(domain.ScheduleOverrides, len(raw))
	for date, override := range raw {
		if override == nil {
			result[date] = nil
			continue
		}
		result[date] = &domain.ScheduleOverride{Slots: toDomainSlots(override.Slots)}
	}
	return result, nil
}

func encodeOverrides(overrides domain.ScheduleOverrides) ([]byte, error) {
	raw := make(map[string]*overrideJSON, len(overrides))
	for date, override := range overrides {
		if override == nil {
			raw[date] = &overrideJSON{}
			continue
		}
		raw[date] = &overrideJSON{Slots: fromDomainSlots(override.Slots)}
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrEncode, domain.SettingsKeyScheduleOverrides, err)
	}
	return data, nil
}

// toDomainSlots сохраняет различие nil (день закрыт) и пустого списка
func toDomainSlots(slots []slotDefinitionJSON) []domain.SlotDefinition {
	if slots == nil {
		return nil
	}
	result := make([]domain.SlotDefinition, 0, len(slots))
	for _, s := range slots {
		result = append(result, domain.SlotDefinition{Time: s.Time, Technique: domain.Technique(s.Technique)})
	}
	return result
}

func fromDomainSlots(slots []domain.SlotDefinition) []slotDefinitionJSON {
	if slots == nil {
		return nil
	}
	result := make([]slotDefinitionJSON, 0, len(slots))
	for _, s := range slots {
		result = append(result, slotDefinitionJSON{Time: s.Time, Technique: string(s.Technique)})
	}
	return result
}
