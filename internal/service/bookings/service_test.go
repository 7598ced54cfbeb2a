package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CeramicsBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CeramicsBooking/internal/service/bookings/models"
)

type fakeRepo struct {
	bookings      map[int64]*domain.Booking
	lastFilter    domain.BookingsFilter
	cancelled     map[int64]string
	expiredBefore time.Time
	expireCount   int64
	err           error
}

func newFakeRepo(bookings ...*domain.Booking) *fakeRepo {
	r := &fakeRepo{bookings: map[int64]*domain.Booking{}, cancelled: map[int64]string{}}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if r.err != nil {
		return nil, r.err
	}
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (r *fakeRepo) GetByFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.lastFilter = filter
	if r.err != nil {
		return nil, r.err
	}
	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.HasSlotOn(filter.Date.Format(domain.DateFormat)) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (r *fakeRepo) Cancel(_ context.Context, id int64, reason string) error {
	r.cancelled[id] = reason
	r.bookings[id].Status = domain.StatusCancelled
	return nil
}

func (r *fakeRepo) ExpireBefore(_ context.Context, before time.Time) (int64, error) {
	r.expiredBefore = before
	return r.expireCount, r.err
}

type fakeTxManager struct{ calls int }

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func booking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:               id,
		Reference:        "5f1d7c7e-3b0a-4c38-9a77-0d1f1e0c9b11",
		Product:          domain.Product{Type: domain.ProductSingleClass, Name: "Clase de torno"},
		ParticipantCount: 2,
		Slots:            []domain.BookingSlot{{Date: "2025-03-13", Time: "10:00"}},
		Status:           status,
		CustomerName:     "Ana",
		CustomerEmail:    "ana@example.com",
	}
}

func TestService_GetByID(t *testing.T) {
	svc := NewService(newFakeRepo(booking(1, domain.StatusActive)), &fakeTxManager{}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	require.NotNil(t, resp.Technique)
	assert.Equal(t, "potters_wheel", *resp.Technique)
	assert.Equal(t, []models.SlotResponse{{Date: "2025-03-13", Time: "10:00"}}, resp.Slots)

	_, err = svc.GetByID(context.Background(), 2)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_GetByID_RepositoryError(t *testing.T) {
	repo := newFakeRepo()
	repo.err = errors.New("connection reset")
	svc := NewService(repo, &fakeTxManager{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Cancel(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.BookingStatus
		id      int64
		wantErr error
	}{
		{name: "active booking", status: domain.StatusActive, id: 1},
		{name: "already cancelled", status: domain.StatusCancelled, id: 1, wantErr: ErrCannotCancel},
		{name: "expired", status: domain.StatusExpired, id: 1, wantErr: ErrCannotCancel},
		{name: "missing", status: domain.StatusActive, id: 42, wantErr: ErrBookingNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(booking(1, tt.status))
			tx := &fakeTxManager{}
			svc := NewService(repo, tx, nopLogger{})

			err := svc.Cancel(context.Background(), tt.id, &models.CancelBookingRequest{
				AdminID:            7,
				CancellationReason: "  studio closed  ",
			})

			assert.Equal(t, 1, tx.calls)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.cancelled)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "studio closed", repo.cancelled[1])
		})
	}
}

func TestService_GetDayBookings(t *testing.T) {
	repo := newFakeRepo(booking(1, domain.StatusActive))
	svc := NewService(repo, &fakeTxManager{}, nopLogger{})
	date := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)

	resp, err := svc.GetDayBookings(context.Background(), &models.GetDayBookingsRequest{Date: date, IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
	assert.True(t, repo.lastFilter.IncludeInactive)

	bad := "confirmed"
	_, err = svc.GetDayBookings(context.Background(), &models.GetDayBookingsRequest{Date: date, Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetDayBookings(context.Background(), &models.GetDayBookingsRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ExpirePast(t *testing.T) {
	repo := newFakeRepo()
	repo.expireCount = 3
	svc := NewService(repo, &fakeTxManager{}, nopLogger{})

	count, err := svc.ExpirePast(context.Background(), time.Date(2025, 3, 13, 15, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Equal(t, time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), repo.expiredBefore)
}
