package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/types"
)

func TestEvaluate(t *testing.T) {
	capacity := domain.DefaultCapacity()
	fixed := []types.TimeString{"10:00"}

	tests := []struct {
		name          string
		candidate     Candidate
		fixedTimes    []types.TimeString
		contributions []Contribution
		want          domain.SlotAvailability
	}{
		{
			name:       "large group at the fixed class time",
			candidate:  Candidate{Time: "10:00", Technique: domain.TechniquePottersWheel, Participants: 4},
			fixedTimes: fixed,
			want: domain.SlotAvailability{
				Time: "10:00", CanBook: true, BlockedReason: domain.ReasonNone, BookedCount: 0, AvailableCount: 8,
			},
		},
		{
			name:       "small group away from fixed class",
			candidate:  Candidate{Time: "11:00", Technique: domain.TechniquePottersWheel, Participants: 2},
			fixedTimes: fixed,
			want: domain.SlotAvailability{
				Time: "11:00", CanBook: false, BlockedReason: domain.ReasonFixedClassConflict, AvailableCount: 8,
			},
		},
		{
			name:          "existing booking saturates capacity",
			candidate:     Candidate{Time: "10:00", Technique: domain.TechniquePottersWheel, Participants: 4},
			fixedTimes:    fixed,
			contributions: []Contribution{{BookingID: 1, Times: []types.TimeString{"10:00"}, PottersCount: 5}},
			want: domain.SlotAvailability{
				Time: "10:00", CanBook: false, BlockedReason: domain.ReasonCapacity, BookedCount: 5, AvailableCount: 3,
			},
		},
		{
			name:       "small part of a private-sized group away from fixed class",
			candidate:  Candidate{Time: "12:00", Technique: domain.TechniquePottersWheel, Participants: 2, GroupSize: 5},
			fixedTimes: fixed,
			want: domain.SlotAvailability{
				Time: "12:00", CanBook: true, BlockedReason: domain.ReasonNone, AvailableCount: 8,
			},
		},
		{
			name:       "small part of a private-sized group inside protection window",
			candidate:  Candidate{Time: "11:00", Technique: domain.TechniquePottersWheel, Participants: 1, GroupSize: 4},
			fixedTimes: fixed,
			want: domain.SlotAvailability{
				Time: "11:00", CanBook: false, BlockedReason: domain.ReasonFixedClassConflict, AvailableCount: 8,
			},
		},
		{
			name:       "small group at the fixed class time",
			candidate:  Candidate{Time: "10:00", Technique: domain.TechniquePottersWheel, Participants: 1},
			fixedTimes: fixed,
			want: domain.SlotAvailability{
				Time: "10:00", CanBook: true, BlockedReason: domain.ReasonNone, AvailableCount: 8,
			},
		},
		{
			name:       "small group with no fixed classes at all",
			candidate:  Candidate{Time: "10:00", Technique: domain.TechniquePainting, Participants: 2},
			fixedTimes: nil,
			want: domain.SlotAvailability{
				Time: "10:00", CanBook: false, BlockedReason: domain.ReasonFixedClassConflict, AvailableCount: 14,
			},
		},
		{
			name:       "large group inside the protection window",
			candidate:  Candidate{Time: "11:59", Technique: domain.TechniquePottersWheel, Participants: 3},
			fixedTimes: fixed,
			want: domain.SlotAvailability{
				Time: "11:59", CanBook: false, BlockedReason: domain.ReasonFixedClassConflict, AvailableCount: 8,
			},
		},
		{
			name:       "large group exactly at the window edge",
			candidate:  Candidate{Time: "12:00", Technique: domain.TechniquePottersWheel, Participants: 3},
			fixedTimes: fixed,
			want: domain.SlotAvailability{
				Time: "12:00", CanBook: true, BlockedReason: domain.ReasonNone, AvailableCount: 8,
			},
		},
		{
			name:          "nearby booking in the same pool blocks",
			candidate:     Candidate{Time: "16:00", Technique: domain.TechniquePainting, Participants: 6},
			contributions: []Contribution{{BookingID: 1, Times: []types.TimeString{"17:30"}, HandWorkCount: 2}},
			want: domain.SlotAvailability{
				Time: "16:00", CanBook: false, BlockedReason: domain.ReasonBookingOverlap, AvailableCount: 14,
			},
		},
		{
			name:          "nearby booking in another pool is ignored",
			candidate:     Candidate{Time: "16:00", Technique: domain.TechniquePainting, Participants: 6},
			contributions: []Contribution{{BookingID: 1, Times: []types.TimeString{"17:30"}, PottersCount: 2}},
			want: domain.SlotAvailability{
				Time: "16:00", CanBook: true, BlockedReason: domain.ReasonNone, AvailableCount: 14,
			},
		},
		{
			name:      "unresolved booking blocks both pools",
			candidate: Candidate{Time: "16:00", Technique: domain.TechniqueHandModeling, Participants: 3},
			contributions: []Contribution{
				{BookingID: 1, Times: []types.TimeString{"16:00"}, PottersCount: 12, HandWorkCount: 12},
			},
			want: domain.SlotAvailability{
				Time: "16:00", CanBook: false, BlockedReason: domain.ReasonCapacity, BookedCount: 12, AvailableCount: 2,
			},
		},
		{
			name:       "fixed conflict wins over overlap and still reports counts",
			candidate:  Candidate{Time: "11:00", Technique: domain.TechniquePottersWheel, Participants: 4},
			fixedTimes: fixed,
			contributions: []Contribution{
				{BookingID: 1, Times: []types.TimeString{"11:00"}, PottersCount: 6},
				{BookingID: 2, Times: []types.TimeString{"12:00"}, PottersCount: 1},
			},
			want: domain.SlotAvailability{
				Time: "11:00", CanBook: false, BlockedReason: domain.ReasonFixedClassConflict, BookedCount: 6, AvailableCount: 2,
			},
		},
		{
			name:          "overbooked slot never reports negative availability",
			candidate:     Candidate{Time: "10:00", Technique: domain.TechniquePottersWheel, Participants: 3},
			fixedTimes:    fixed,
			contributions: []Contribution{{BookingID: 1, Times: []types.TimeString{"10:00"}, PottersCount: 11}},
			want: domain.SlotAvailability{
				Time: "10:00", CanBook: false, BlockedReason: domain.ReasonCapacity, BookedCount: 11, AvailableCount: 0,
			},
		},
		{
			name:          "unparseable booking time contributes nothing",
			candidate:     Candidate{Time: "10:00", Technique: domain.TechniquePottersWheel, Participants: 3},
			fixedTimes:    []types.TimeString{"garbage", "10:00"},
			contributions: []Contribution{{BookingID: 1, Times: []types.TimeString{"xx:yy"}, PottersCount: 8}},
			want: domain.SlotAvailability{
				Time: "10:00", CanBook: true, BlockedReason: domain.ReasonNone, AvailableCount: 8,
			},
		},
		{
			name:          "unparseable candidate time finds no conflict",
			candidate:     Candidate{Time: "later", Technique: domain.TechniquePottersWheel, Participants: 1},
			fixedTimes:    fixed,
			contributions: []Contribution{{BookingID: 1, Times: []types.TimeString{"10:00"}, PottersCount: 8}},
			want: domain.SlotAvailability{
				Time: "later", CanBook: true, BlockedReason: domain.ReasonNone, AvailableCount: 8,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.candidate, tt.fixedTimes, tt.contributions, capacity)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluate_SmallGroupsOnlyAtFixedTimes(t *testing.T) {
	fixed := []types.TimeString{"10:00", "18:00"}

	for minutes := 0; minutes < 24*60; minutes += 15 {
		at, err := types.NewTimeStringFromMinutes(minutes)
		assert.NoError(t, err)

		for participants := 1; participants < domain.PrivateBookingThreshold; participants++ {
			got := Evaluate(
				Candidate{Time: at, Technique: domain.TechniquePottersWheel, Participants: participants},
				fixed, nil, domain.DefaultCapacity(),
			)
			isFixed := at == "10:00" || at == "18:00"
			assert.Equal(t, isFixed, got.CanBook, "time %s participants %d", at, participants)
		}
	}
}

func TestEvaluate_LargeGroupsAvoidProtectionWindow(t *testing.T) {
	fixed := []types.TimeString{"12:00"}

	for minutes := 0; minutes < 24*60; minutes += 5 {
		at, err := types.NewTimeStringFromMinutes(minutes)
		assert.NoError(t, err)

		got := Evaluate(
			Candidate{Time: at, Technique: domain.TechniquePottersWheel, Participants: 5},
			fixed, nil, domain.DefaultCapacity(),
		)

		distance := absInt(minutes - 12*60)
		if distance > 0 && distance < domain.ProtectionWindowMinutes {
			assert.False(t, got.CanBook, "time %s", at)
			assert.Equal(t, domain.ReasonFixedClassConflict, got.BlockedReason)
		} else {
			assert.True(t, got.CanBook, "time %s", at)
		}
	}
}
