package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/types"
)

func TestAggregateBookings(t *testing.T) {
	date := thursday.Format(domain.DateFormat)

	tests := []struct {
		name     string
		bookings []*domain.Booking
		want     []Contribution
	}{
		{
			name: "explicit technique goes to its pool",
			bookings: []*domain.Booking{
				activeBooking(1, domain.TechniquePottersWheel, 5, slot(thursday, "10:00")),
				activeBooking(2, domain.TechniquePainting, 2, slot(thursday, "9:00")),
			},
			want: []Contribution{
				{BookingID: 1, Times: []types.TimeString{"10:00"}, PottersCount: 5},
				{BookingID: 2, Times: []types.TimeString{"09:00"}, HandWorkCount: 2},
			},
		},
		{
			name: "inactive bookings and other dates are skipped",
			bookings: []*domain.Booking{
				{ID: 1, Technique: technique(domain.TechniquePottersWheel), ParticipantCount: 3,
					Slots: []domain.BookingSlot{slot(thursday, "10:00")}, Status: domain.StatusCancelled},
				{ID: 2, Technique: technique(domain.TechniquePottersWheel), ParticipantCount: 3,
					Slots: []domain.BookingSlot{slot(thursday, "10:00")}, Status: domain.StatusExpired},
				activeBooking(3, domain.TechniquePottersWheel, 3, slot(tuesday, "10:00")),
				nil,
			},
			want: []Contribution{},
		},
		{
			name: "unresolvable technique counts against both pools",
			bookings: []*domain.Booking{
				{ID: 7, ParticipantCount: 4, Status: domain.StatusActive,
					Product: domain.Product{Type: domain.ProductGroupClass, Name: "Cumpleaños"},
					Slots:   []domain.BookingSlot{slot(thursday, "17:00")}},
			},
			want: []Contribution{
				{BookingID: 7, Times: []types.TimeString{"17:00"}, PottersCount: 4, HandWorkCount: 4},
			},
		},
		{
			name: "product name keyword resolves legacy booking",
			bookings: []*domain.Booking{
				{ID: 8, ParticipantCount: 2, Status: domain.StatusActive,
					Product: domain.Product{Type: domain.ProductSingleClass, Name: "Clase de Pintura"},
					Slots:   []domain.BookingSlot{slot(thursday, "12:00")}},
			},
			want: []Contribution{
				{BookingID: 8, Times: []types.TimeString{"12:00"}, HandWorkCount: 2},
			},
		},
		{
			name: "group class is split per participant",
			bookings: []*domain.Booking{
				{ID: 9, ParticipantCount: 4, Status: domain.StatusActive,
					Product: domain.Product{Type: domain.ProductGroupClass, Name: "Grupo"},
					Slots:   []domain.BookingSlot{slot(thursday, "10:00")},
					TechniqueAssignments: []domain.ParticipantTechnique{
						{ParticipantNumber: 1, Technique: domain.TechniquePottersWheel},
						{ParticipantNumber: 2, Technique: domain.TechniquePottersWheel},
						{ParticipantNumber: 3, Technique: domain.TechniquePainting},
						{ParticipantNumber: 4, Technique: domain.TechniqueHandModeling},
					}},
			},
			want: []Contribution{
				{BookingID: 9, Times: []types.TimeString{"10:00"}, PottersCount: 2, HandWorkCount: 2},
			},
		},
		{
			name: "participants without assignment fall back to booking technique",
			bookings: []*domain.Booking{
				{ID: 10, ParticipantCount: 3, Status: domain.StatusActive,
					Technique: technique(domain.TechniquePainting),
					Slots:     []domain.BookingSlot{slot(thursday, "10:00")},
					TechniqueAssignments: []domain.ParticipantTechnique{
						{ParticipantNumber: 1, Technique: domain.TechniquePottersWheel},
					}},
			},
			want: []Contribution{
				{BookingID: 10, Times: []types.TimeString{"10:00"}, PottersCount: 1, HandWorkCount: 2},
			},
		},
		{
			name: "unparseable slot time is dropped but the booking still touches the date",
			bookings: []*domain.Booking{
				activeBooking(11, domain.TechniquePottersWheel, 2,
					slot(thursday, "ten"), slot(thursday, "10:00"), slot(thursday, "10:00")),
			},
			want: []Contribution{
				{BookingID: 11, Times: []types.TimeString{"10:00"}, PottersCount: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AggregateBookings(tt.bookings, date)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i], got[i])
			}
		})
	}
}

func TestContribution_CountFor(t *testing.T) {
	c := Contribution{PottersCount: 3, HandWorkCount: 5}
	assert.Equal(t, 3, c.CountFor(domain.TechniquePottersWheel))
	assert.Equal(t, 5, c.CountFor(domain.TechniqueHandModeling))
	assert.Equal(t, 5, c.CountFor(domain.TechniquePainting))
}
