package availability

import (
	"sort"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/types"
)

// Contribution сколько мест занимает одно бронирование на дату
type Contribution struct {
	BookingID     int64
	Times         []types.TimeString // время слотов бронирования на эту дату
	PottersCount  int                // участники на гончарном круге
	HandWorkCount int                // участники на ручной лепке и росписи
}

// CountFor возвращает число участников в пуле мест техники
func (c Contribution) CountFor(technique domain.Technique) int {
	if technique.CapacityPool() == domain.PoolPotters {
		return c.PottersCount
	}
	return c.HandWorkCount
}

// AggregateBookings считает вклад каждого активного бронирования, у которого есть слот на date (YYYY-MM-DD).
//
// Техника определяется так:
// - если есть назначения по участникам (групповое занятие), каждый участник считается отдельно
// - остальные участники считаются по технике бронирования (domain.ResolveTechnique)
// - если технику определить нельзя, участники занимают места и на круге, и на ручной работе
//
// Время слотов нормализуется, некорректное время пропускается.
func AggregateBookings(bookings []*domain.Booking, date string) []Contribution {
	result := make([]Contribution, 0, len(bookings))

	for _, booking := range bookings {
		if booking == nil || !booking.IsActive() {
			continue
		}

		times, onDate := bookingTimesOn(booking, date)
		if !onDate {
			continue
		}

		contribution := Contribution{
			BookingID: booking.ID,
			Times:     times,
		}

		remaining := booking.ParticipantCount
		for _, assignment := range booking.TechniqueAssignments {
			if remaining <= 0 {
				break
			}
			addParticipants(&contribution, assignment.Technique, assignment.Technique.IsValid(), 1)
			remaining--
		}

		if remaining > 0 {
			technique, ok := domain.ResolveTechnique(booking)
			addParticipants(&contribution, technique, ok, remaining)
		}

		result = append(result, contribution)
	}

	return result
}

// addParticipants добавляет count участников в пул техники или в оба пула, если техника неизвестна
func addParticipants(c *Contribution, technique domain.Technique, resolved bool, count int) {
	if !resolved {
		c.PottersCount += count
		c.HandWorkCount += count
		return
	}

	if technique.CapacityPool() == domain.PoolPotters {
		c.PottersCount += count
	} else {
		c.HandWorkCount += count
	}
}

// bookingTimesOn возвращает уникальное нормализованное время слотов на дату
// и признак того, что у бронирования вообще есть слот на эту дату
func bookingTimesOn(booking *domain.Booking, date string) ([]types.TimeString, bool) {
	onDate := false
	seen := make(map[types.TimeString]struct{})

	for _, slot := range booking.Slots {
		if slot.Date != date {
			continue
		}
		onDate = true

		normalized, ok := types.Normalize(slot.Time)
		if !ok {
			continue
		}
		seen[normalized] = struct{}{}
	}

	times := make([]types.TimeString, 0, len(seen))
	for t := range seen {
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

	return times, onDate
}
