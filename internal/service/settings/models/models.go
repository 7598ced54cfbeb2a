package models

import (
	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
)

// SlotDefinition постоянное занятие в расписании
type SlotDefinition struct {
	Time      string `json:"time"`      // "10:00"
	Technique string `json:"technique"` // "potters_wheel", "hand_modeling", "painting"
}

// Override исключение на дату. Slots=null - постоянных занятий нет
type Override struct {
	Slots []SlotDefinition `json:"slots"`
}

// Request модели

// UpdateAvailabilityRequest запрос на замену недельного расписания
type UpdateAvailabilityRequest struct {
	AdminID      int64                       `json:"-"`
	Availability map[string][]SlotDefinition `json:"availability"`
}

// SetOverrideRequest запрос на установку исключения
type SetOverrideRequest struct {
	AdminID int64            `json:"-"`
	Date    string           `json:"-"` // YYYY-MM-DD из пути
	Slots   []SlotDefinition `json:"slots"`
}

// DeleteOverrideRequest запрос на удаление исключения
type DeleteOverrideRequest struct {
	AdminID int64
	Date    string
}

// ToDomainAvailability конвертирует request в domain модель
func (r *UpdateAvailabilityRequest) ToDomainAvailability() domain.WeeklyAvailability {
	result := make(domain.WeeklyAvailability, len(r.Availability))
	for day, slots := range r.Availability {
		result[day] = toDomainSlots(slots)
	}
	return result
}

// ToDomainOverride конвертирует request в domain модель
func (r *SetOverrideRequest) ToDomainOverride() *domain.ScheduleOverride {
	return &domain.ScheduleOverride{Slots: toDomainSlots(r.Slots)}
}

// Response модели

// ScheduleResponse расписание и исключения
type ScheduleResponse struct {
	Availability map[string][]SlotDefinition `json:"availability"`
	Overrides    map[string]Override         `json:"overrides"`
}

// FromDomainSchedule конвертирует domain модели в DTO
func FromDomainSchedule(availability domain.WeeklyAvailability, overrides domain.ScheduleOverrides) *ScheduleResponse {
	resp := &ScheduleResponse{
		Availability: make(map[string][]SlotDefinition, len(availability)),
		Overrides:    make(map[string]Override, len(overrides)),
	}

	for day, slots := range availability {
		converted := fromDomainSlots(slots)
		if converted == nil {
			converted = []SlotDefinition{}
		}
		resp.Availability[day] = converted
	}

	for date, override := range overrides {
		if override.IsClosed() {
			resp.Overrides[date] = Override{Slots: nil}
			continue
		}
		resp.Overrides[date] = Override{Slots: fromDomainSlots(override.Slots)}
	}

	return resp
}

func toDomainSlots(slots []SlotDefinition) []domain.SlotDefinition {
	if slots == nil {
		return nil
	}
	result := make([]domain.SlotDefinition, 0, len(slots))
	for _, s := range slots {
		result = append(result, domain.SlotDefinition{Time: s.Time, Technique: domain.Technique(s.Technique)})
	}
	return result
}

func fromDomainSlots(slots []domain.SlotDefinition) []SlotDefinition {
	if slots == nil {
		return nil
	}
	result := make([]SlotDefinition, 0, len(slots))
	for _, s := range slots {
		result = append(result, SlotDefinition{Time: s.Time, Technique: string(s.Technique)})
	}
	return result
}
