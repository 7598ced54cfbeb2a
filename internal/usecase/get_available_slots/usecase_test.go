package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
	"github.com/m04kA/SMC-CeramicsBooking/internal/service/availability"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/types"
)

type fakeBookings struct {
	bookings   []*domain.Booking
	lastFilter domain.BookingsFilter
	err        error
}

func (f *fakeBookings) GetByFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	return f.bookings, f.err
}

type fakeSettings struct {
	weekly    domain.WeeklyAvailability
	overrides domain.ScheduleOverrides
	err       error
}

func (f *fakeSettings) GetSchedule(context.Context) (domain.WeeklyAvailability, domain.ScheduleOverrides, error) {
	return f.weekly, f.overrides, f.err
}

type countingObserver struct {
	reasons map[string]int
}

func (o *countingObserver) ObserveDecision(reason string) {
	o.reasons[reason]++
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	tuesday = time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	monday  = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
)

func testHours() StudioHours {
	return StudioHours{
		OpenTime:             "10:00",
		CloseTime:            "21:00",
		StepMinutes:          60,
		ClassDurationMinutes: 120,
		AdvanceBookingDays:   30,
	}
}

func newTestUseCase(bookings *fakeBookings, settings *fakeSettings, observer DecisionObserver, now time.Time) *UseCase {
	uc := NewUseCase(bookings, settings, availability.NewResolver(domain.DefaultCapacity()), testHours(), observer, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func findSlot(t *testing.T, slots []domain.SlotAvailability, at types.TimeString) domain.SlotAvailability {
	t.Helper()
	for _, s := range slots {
		if s.Time == at {
			return s
		}
	}
	t.Fatalf("time %s not found in response", at)
	return domain.SlotAvailability{}
}

func TestExecute_SmallGroupOnlyFixedTimes(t *testing.T) {
	settings := &fakeSettings{
		weekly: domain.WeeklyAvailability{
			"tuesday": {{Time: "10:00", Technique: domain.TechniquePottersWheel}},
		},
	}
	bookings := &fakeBookings{}
	observer := &countingObserver{reasons: map[string]int{}}
	uc := newTestUseCase(bookings, settings, observer, monday)

	resp, err := uc.Execute(context.Background(), &Request{
		Date:         tuesday,
		Technique:    domain.TechniquePottersWheel,
		Participants: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:00", "19:00"}, resp.FixedTimes)
	// Сетка 10:00..19:00 с шагом в час
	assert.Len(t, resp.Slots, 10)

	assert.True(t, findSlot(t, resp.Slots, "10:00").CanBook)
	assert.True(t, findSlot(t, resp.Slots, "19:00").CanBook)

	blocked := findSlot(t, resp.Slots, "12:00")
	assert.False(t, blocked.CanBook)
	assert.Equal(t, domain.ReasonFixedClassConflict, blocked.BlockedReason)

	assert.Equal(t, 2, observer.reasons[string(domain.ReasonNone)])
	assert.Equal(t, 8, observer.reasons[string(domain.ReasonFixedClassConflict)])

	require.NotNil(t, bookings.lastFilter.Date)
	assert.Equal(t, tuesday, *bookings.lastFilter.Date)
	assert.False(t, bookings.lastFilter.IncludeInactive)
}

func TestExecute_ExplicitTimesWithExistingBooking(t *testing.T) {
	potters := domain.TechniquePottersWheel
	settings := &fakeSettings{}
	bookings := &fakeBookings{bookings: []*domain.Booking{{
		ID:               1,
		Technique:        &potters,
		ParticipantCount: 6,
		Slots:            []domain.BookingSlot{{Date: "2025-03-11", Time: "15:00"}},
		Status:           domain.StatusActive,
	}}}
	uc := newTestUseCase(bookings, settings, nil, monday)

	resp, err := uc.Execute(context.Background(), &Request{
		Date:         tuesday,
		Technique:    domain.TechniquePottersWheel,
		Participants: 3,
		Times:        []types.TimeString{"15:00", "16:00", "12:00"},
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)

	// Результат отсортирован по времени
	assert.Equal(t, types.TimeString("12:00"), resp.Slots[0].Time)

	atBooking := findSlot(t, resp.Slots, "15:00")
	assert.False(t, atBooking.CanBook)
	assert.Equal(t, domain.ReasonCapacity, atBooking.BlockedReason)
	assert.Equal(t, 6, atBooking.BookedCount)
	assert.Equal(t, 2, atBooking.AvailableCount)

	overlap := findSlot(t, resp.Slots, "16:00")
	assert.Equal(t, domain.ReasonBookingOverlap, overlap.BlockedReason)

	free := findSlot(t, resp.Slots, "12:00")
	assert.True(t, free.CanBook)
	assert.Equal(t, 8, free.AvailableCount)
}

func TestExecute_TodayDropsTimesWithoutNotice(t *testing.T) {
	settings := &fakeSettings{}
	uc := newTestUseCase(&fakeBookings{}, settings, nil, time.Date(2025, 3, 11, 14, 30, 0, 0, time.UTC))
	uc.hours.MinBookingNoticeMinutes = 60

	resp, err := uc.Execute(context.Background(), &Request{
		Date:         tuesday,
		Technique:    domain.TechniquePainting,
		Participants: 4,
	})

	require.NoError(t, err)
	for _, s := range resp.Slots {
		minutes, err := s.Time.Minutes()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, minutes, 15*60+30)
	}
	assert.Equal(t, types.TimeString("16:00"), resp.Slots[0].Time)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeBookings{}, &fakeSettings{}, nil, monday)

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name:    "missing date",
			req:     &Request{Technique: domain.TechniquePainting, Participants: 1},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown technique",
			req:     &Request{Date: tuesday, Technique: "glazing", Participants: 1},
			wantErr: ErrInvalidTechnique,
		},
		{
			name:    "zero participants",
			req:     &Request{Date: tuesday, Technique: domain.TechniquePainting},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "bad time",
			req:     &Request{Date: tuesday, Technique: domain.TechniquePainting, Participants: 1, Times: []types.TimeString{"25:00"}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "date in past",
			req:     &Request{Date: monday.AddDate(0, 0, -1), Technique: domain.TechniquePainting, Participants: 1},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "too far ahead",
			req:     &Request{Date: monday.AddDate(0, 0, 31), Technique: domain.TechniquePainting, Participants: 1},
			wantErr: ErrDateTooFarInFuture,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_RepositoryErrors(t *testing.T) {
	req := &Request{Date: tuesday, Technique: domain.TechniquePainting, Participants: 1}

	uc := newTestUseCase(&fakeBookings{}, &fakeSettings{err: errors.New("db down")}, nil, monday)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInternal)

	uc = newTestUseCase(&fakeBookings{err: errors.New("db down")}, &fakeSettings{}, nil, monday)
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGenerateGrid(t *testing.T) {
	grid := generateGrid(StudioHours{OpenTime: "10:00", CloseTime: "13:00", StepMinutes: 30, ClassDurationMinutes: 120})
	assert.Equal(t, []types.TimeString{"10:00", "10:30", "11:00"}, grid)

	assert.Empty(t, generateGrid(StudioHours{OpenTime: "10:00", CloseTime: "13:00"}))
}

func TestMergeTimes(t *testing.T) {
	merged := mergeTimes([]types.TimeString{"9:00", "11:00"}, []types.TimeString{"09:00", "bad", "10:00"})
	assert.Equal(t, []types.TimeString{"09:00", "10:00", "11:00"}, merged)
}
