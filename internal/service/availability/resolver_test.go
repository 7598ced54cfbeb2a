package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/types"
)

func thursdaySnapshot(bookings ...*domain.Booking) Snapshot {
	return Snapshot{
		Availability: domain.WeeklyAvailability{
			"thursday": {{Time: "10:00", Technique: domain.TechniquePottersWheel}},
		},
		Bookings: bookings,
	}
}

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(domain.DefaultCapacity())

	got := r.Resolve(thursdaySnapshot(), Query{
		Date:         thursday,
		Technique:    domain.TechniquePottersWheel,
		Participants: 4,
		Times:        []types.TimeString{"10:00", "11:00", "13:00"},
	})

	require.Len(t, got, 3)
	assert.True(t, got[0].CanBook)
	assert.Equal(t, 8, got[0].AvailableCount)
	assert.Equal(t, domain.ReasonFixedClassConflict, got[1].BlockedReason)
	assert.True(t, got[2].CanBook)
}

func TestResolver_Check(t *testing.T) {
	r := NewResolver(domain.DefaultCapacity())

	t.Run("thursday 10:00 with four participants", func(t *testing.T) {
		got := r.Check(thursdaySnapshot(), thursday, "10:00", domain.TechniquePottersWheel, 4)
		assert.True(t, got.CanBook)
		assert.Equal(t, 8, got.AvailableCount)
	})

	t.Run("thursday 11:00 with two participants", func(t *testing.T) {
		got := r.Check(thursdaySnapshot(), thursday, "11:00", domain.TechniquePottersWheel, 2)
		assert.False(t, got.CanBook)
		assert.Equal(t, domain.ReasonFixedClassConflict, got.BlockedReason)
	})

	t.Run("five potters already booked at 10:00", func(t *testing.T) {
		snapshot := thursdaySnapshot(activeBooking(1, domain.TechniquePottersWheel, 5, slot(thursday, "10:00")))

		got := r.Check(snapshot, thursday, "10:00", domain.TechniquePottersWheel, 4)
		assert.False(t, got.CanBook)
		assert.Equal(t, domain.ReasonCapacity, got.BlockedReason)
		assert.Equal(t, 5, got.BookedCount)
		assert.Equal(t, 3, got.AvailableCount)
	})

	t.Run("two potters from a group of four at 13:00", func(t *testing.T) {
		got := r.CheckPart(thursdaySnapshot(), thursday, "13:00", domain.TechniquePottersWheel, 2, 4)
		assert.True(t, got.CanBook)

		alone := r.Check(thursdaySnapshot(), thursday, "13:00", domain.TechniquePottersWheel, 2)
		assert.Equal(t, domain.ReasonFixedClassConflict, alone.BlockedReason)
	})

	t.Run("closed override blocks small groups", func(t *testing.T) {
		snapshot := thursdaySnapshot()
		snapshot.Overrides = domain.ScheduleOverrides{"2025-03-13": {Slots: nil}}

		got := r.Check(snapshot, thursday, "10:00", domain.TechniquePottersWheel, 2)
		assert.Equal(t, domain.ReasonFixedClassConflict, got.BlockedReason)
	})
}

func TestResolver_Idempotent(t *testing.T) {
	r := NewResolver(domain.DefaultCapacity())
	snapshot := thursdaySnapshot(
		activeBooking(1, domain.TechniquePottersWheel, 5, slot(thursday, "10:00")),
		activeBooking(2, domain.TechniquePainting, 3, slot(thursday, "16:00")),
	)
	query := Query{
		Date:         thursday,
		Technique:    domain.TechniquePottersWheel,
		Participants: 3,
		Times:        []types.TimeString{"09:00", "10:00", "12:00", "16:00"},
	}

	first := r.Resolve(snapshot, query)
	second := r.Resolve(snapshot, query)

	assert.Equal(t, first, second)
}
