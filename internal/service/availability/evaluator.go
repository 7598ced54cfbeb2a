package availability

import (
	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/types"
)

// Candidate запрос на проверку одного времени
type Candidate struct {
	Time         types.TimeString
	Technique    domain.Technique
	Participants int
	GroupSize    int // Всего участников в бронировании, 0 = Participants
}

// groupSize размер бронирования для правила постоянных занятий
func (c Candidate) groupSize() int {
	if c.GroupSize > c.Participants {
		return c.GroupSize
	}
	return c.Participants
}

// Evaluate решает, можно ли забронировать candidate.
// Первая найденная причина блокировки побеждает, причины не комбинируются.
//
// 1. Постоянные занятия. Вокруг каждого окно защиты 120 минут.
//    Меньше 3 участников во всем бронировании - время должно совпадать с постоянным занятием.
//    От 3 участников - время не должно попадать в окно (0 < |Δ| < 120), точное совпадение разрешено.
// 2. Бронирования. Совпадение по времени добавляет участников в "занято".
//    Попадание в окно без совпадения блокирует как booking_overlap.
// 3. Места. available = max(0, capacity - booked), если available < participants - capacity.
//
// Некорректное время (кандидата, занятия или бронирования) не дает конфликта.
func Evaluate(
	candidate Candidate,
	fixedTimes []types.TimeString,
	contributions []Contribution,
	capacity domain.CapacityConfig,
) domain.SlotAvailability {
	reason := domain.ReasonNone
	candidateMinutes, candidateErr := candidate.Time.Minutes()
	validTime := candidateErr == nil

	// Шаг 1: Постоянные занятия
	if validTime {
		reason = checkFixedClasses(candidateMinutes, candidate.groupSize(), fixedTimes)
	}

	// Шаг 2: Существующие бронирования той же группы мест
	booked := 0
	for _, contribution := range contributions {
		count := contribution.CountFor(candidate.Technique)
		if count == 0 {
			continue
		}

		for _, t := range contribution.Times {
			if !validTime {
				break
			}
			minutes, err := t.Minutes()
			if err != nil {
				continue
			}

			distance := absInt(minutes - candidateMinutes)
			switch {
			case distance == 0:
				booked += count
			case distance < domain.ProtectionWindowMinutes && reason == domain.ReasonNone:
				reason = domain.ReasonBookingOverlap
			}
		}
	}

	// Шаг 3: Места
	available := capacity.For(candidate.Technique) - booked
	if available < 0 {
		available = 0
	}
	if reason == domain.ReasonNone && available < candidate.Participants {
		reason = domain.ReasonCapacity
	}

	return domain.SlotAvailability{
		Time:           candidate.Time,
		CanBook:        reason == domain.ReasonNone && available >= candidate.Participants,
		BlockedReason:  reason,
		BookedCount:    booked,
		AvailableCount: available,
	}
}

func checkFixedClasses(candidateMinutes int, groupSize int, fixedTimes []types.TimeString) domain.BlockedReason {
	if groupSize < domain.PrivateBookingThreshold {
		for _, fixed := range fixedTimes {
			minutes, err := fixed.Minutes()
			if err != nil {
				continue
			}
			if minutes == candidateMinutes {
				return domain.ReasonNone
			}
		}
		return domain.ReasonFixedClassConflict
	}

	for _, fixed := range fixedTimes {
		minutes, err := fixed.Minutes()
		if err != nil {
			continue
		}
		distance := absInt(minutes - candidateMinutes)
		if distance > 0 && distance < domain.ProtectionWindowMinutes {
			return domain.ReasonFixedClassConflict
		}
	}
	return domain.ReasonNone
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
