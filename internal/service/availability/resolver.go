package availability

import (
	"time"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/types"
)

// Snapshot данные, по которым принимается решение. Читаются заново на каждый запрос.
type Snapshot struct {
	Availability domain.WeeklyAvailability
	Overrides    domain.ScheduleOverrides
	Bookings     []*domain.Booking
}

// Query проверка нескольких вариантов времени на одну дату
type Query struct {
	Date         time.Time
	Technique    domain.Technique
	Participants int
	GroupSize    int // Всего участников в бронировании, 0 = Participants
	Times        []types.TimeString
}

// Resolver проверяет доступность слотов. Не хранит состояния между вызовами.
type Resolver struct {
	capacity domain.CapacityConfig
}

// NewResolver создает резолвер с заданной вместимостью
func NewResolver(capacity domain.CapacityConfig) *Resolver {
	return &Resolver{capacity: capacity}
}

// Capacity возвращает вместимость, с которой работает резолвер
func (r *Resolver) Capacity() domain.CapacityConfig {
	return r.capacity
}

// Resolve возвращает решение для каждого времени из запроса в том же порядке
func (r *Resolver) Resolve(snapshot Snapshot, query Query) []domain.SlotAvailability {
	fixedTimes := FixedSlotTimes(query.Date, query.Technique, snapshot.Availability, snapshot.Overrides)
	contributions := AggregateBookings(snapshot.Bookings, query.Date.Format(domain.DateFormat))

	result := make([]domain.SlotAvailability, 0, len(query.Times))
	for _, t := range query.Times {
		result = append(result, Evaluate(
			Candidate{Time: t, Technique: query.Technique, Participants: query.Participants, GroupSize: query.GroupSize},
			fixedTimes,
			contributions,
			r.capacity,
		))
	}
	return result
}

// Check проверяет одно время
func (r *Resolver) Check(
	snapshot Snapshot,
	date time.Time,
	at types.TimeString,
	technique domain.Technique,
	participants int,
) domain.SlotAvailability {
	return r.CheckPart(snapshot, date, at, technique, participants, participants)
}

// CheckPart проверяет одно время для части бронирования.
// participants занимают места выбранной техники, groupSize - размер всего бронирования.
func (r *Resolver) CheckPart(
	snapshot Snapshot,
	date time.Time,
	at types.TimeString,
	technique domain.Technique,
	participants int,
	groupSize int,
) domain.SlotAvailability {
	return r.Resolve(snapshot, Query{
		Date:         date,
		Technique:    technique,
		Participants: participants,
		GroupSize:    groupSize,
		Times:        []types.TimeString{at},
	})[0]
}
