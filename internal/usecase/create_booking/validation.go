package create_booking

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !req.Product.Type.IsValid() {
		return fmt.Errorf("%w: unknown product type %q", ErrInvalidInput, req.Product.Type)
	}

	if strings.TrimSpace(req.Product.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}

	if req.Technique != nil && !req.Technique.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTechnique, *req.Technique)
	}

	if req.ParticipantCount < domain.MinParticipants || req.ParticipantCount > domain.MaxParticipants {
		return fmt.Errorf("%w: participantCount must be between %d and %d",
			ErrInvalidInput, domain.MinParticipants, domain.MaxParticipants)
	}

	if len(req.Slots) == 0 {
		return fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}
	if len(req.Slots) > domain.MaxSlotsPerBooking {
		return fmt.Errorf("%w: at most %d slots per booking", ErrInvalidInput, domain.MaxSlotsPerBooking)
	}

	seen := make(map[string]struct{}, len(req.Slots))
	for _, s := range req.Slots {
		if s.Date.IsZero() {
			return fmt.Errorf("%w: slot date is required", ErrInvalidInput)
		}
		if err := s.Time.Validate(); err != nil {
			return fmt.Errorf("%w: invalid slot time %q: %w", ErrInvalidInput, s.Time, err)
		}
		key := slotKey(s)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: duplicate slot %s", ErrInvalidInput, key)
		}
		seen[key] = struct{}{}
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" || len(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName must be 1..%d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if strings.TrimSpace(req.CustomerEmail) == "" {
		return fmt.Errorf("%w: customerEmail is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return validateAssignments(req)
}

// validateAssignments проверяет распределение участников группового занятия по техникам
// Для group_class оно обязательно, для остальных продуктов запрещено
func validateAssignments(req *Request) error {
	if req.Product.Type != domain.ProductGroupClass {
		if len(req.TechniqueAssignments) > 0 {
			return fmt.Errorf("%w: assignments are allowed only for %s", ErrInvalidAssignments, domain.ProductGroupClass)
		}
		return nil
	}

	if len(req.TechniqueAssignments) != req.ParticipantCount {
		return fmt.Errorf("%w: expected %d assignments, got %d",
			ErrInvalidAssignments, req.ParticipantCount, len(req.TechniqueAssignments))
	}

	seen := make(map[int]struct{}, len(req.TechniqueAssignments))
	for _, a := range req.TechniqueAssignments {
		if a.ParticipantNumber < 1 || a.ParticipantNumber > req.ParticipantCount {
			return fmt.Errorf("%w: participant number %d out of range", ErrInvalidAssignments, a.ParticipantNumber)
		}
		if _, dup := seen[a.ParticipantNumber]; dup {
			return fmt.Errorf("%w: participant %d assigned twice", ErrInvalidAssignments, a.ParticipantNumber)
		}
		seen[a.ParticipantNumber] = struct{}{}

		if !a.Technique.IsValid() {
			return fmt.Errorf("%w: participant %d has unknown technique %q",
				ErrInvalidAssignments, a.ParticipantNumber, a.Technique)
		}
	}

	return nil
}

// validateSlotTime проверяет дату и время относительно текущего момента
func validateSlotTime(slot SlotRequest, now time.Time, policy Policy) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	date := time.Date(slot.Date.Year(), slot.Date.Month(), slot.Date.Day(), 0, 0, 0, 0, now.Location())

	if date.Before(today) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, slot.Date.Format(domain.DateFormat))
	}

	if policy.AdvanceBookingDays > 0 && date.After(today.AddDate(0, 0, policy.AdvanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, policy.AdvanceBookingDays)
	}

	if !date.Equal(today) {
		return nil
	}

	minutes, err := slot.Time.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid slot time %q", ErrInvalidInput, slot.Time)
	}

	nowMinutes := now.Hour()*60 + now.Minute()
	if minutes-nowMinutes < policy.MinBookingNoticeMinutes {
		return fmt.Errorf("%w: slot %s starts in %d minutes, at least %d required",
			ErrTooLateToBook, slot.Time, minutes-nowMinutes, policy.MinBookingNoticeMinutes)
	}

	return nil
}

// seatRequests возвращает, сколько мест бронирование занимает в каждой группе мест
// Для групповых занятий участники суммируются внутри группы мест,
// в качестве техники берется первая встреченная техника группы
func seatRequests(technique domain.Technique, req *Request) []seatRequest {
	if len(req.TechniqueAssignments) == 0 {
		return []seatRequest{{technique: technique, participants: req.ParticipantCount}}
	}

	byPool := make(map[domain.CapacityPool]*seatRequest)
	order := make([]domain.CapacityPool, 0, 2)
	for _, a := range req.TechniqueAssignments {
		pool := a.Technique.CapacityPool()
		seat, ok := byPool[pool]
		if !ok {
			seat = &seatRequest{technique: a.Technique}
			byPool[pool] = seat
			order = append(order, pool)
		}
		seat.participants++
	}

	result := make([]seatRequest, 0, len(order))
	for _, pool := range order {
		result = append(result, *byPool[pool])
	}
	return result
}

// storesSingleTechnique сообщает, что все места бронирования в группе мест техники
func storesSingleTechnique(technique domain.Technique, seats []seatRequest) bool {
	for _, seat := range seats {
		if seat.technique.CapacityPool() != technique.CapacityPool() {
			return false
		}
	}
	return true
}

// lockKeys возвращает отсортированные ключи блокировок "дата|группа мест"
// Одинаковый порядок во всех транзакциях исключает взаимные блокировки
func lockKeys(slots []SlotRequest, seats []seatRequest) []string {
	set := make(map[string]struct{})
	for _, s := range slots {
		for _, seat := range seats {
			key := s.Date.Format(domain.DateFormat) + "|" + string(seat.technique.CapacityPool())
			set[key] = struct{}{}
		}
	}

	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func slotKey(s SlotRequest) string {
	return s.Date.Format(domain.DateFormat) + " " + s.Time.String()
}

// normalizeSlots приводит время к виду "HH:MM", некорректное время оставляет как есть
func normalizeSlots(slots []SlotRequest) []SlotRequest {
	result := make([]SlotRequest, len(slots))
	for i, s := range slots {
		result[i] = s
		if normalized, ok := types.Normalize(s.Time.String()); ok {
			result[i].Time = normalized
		}
	}
	return result
}
