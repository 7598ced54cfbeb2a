package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
	"github.com/m04kA/SMC-CeramicsBooking/internal/service/availability"
)

// UseCase use case для получения доступности времени на дату
type UseCase struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	resolver     SlotResolver
	hours        StudioHours
	observer     DecisionObserver
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// observer может быть nil, если метрики выключены
func NewUseCase(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	resolver SlotResolver,
	hours StudioHours,
	observer DecisionObserver,
	logger Logger,
) *UseCase {
	if observer == nil {
		observer = nopObserver{}
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		resolver:     resolver,
		hours:        hours,
		observer:     observer,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, technique=%s, participants=%d, times=%d",
		req.Date.Format(domain.DateFormat), req.Technique, req.Participants, len(req.Times))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация даты относительно текущего времени
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now, uc.hours.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем расписание постоянных занятий
	weekly, overrides, err := uc.settingsRepo.GetSchedule(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedule settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule settings: %w", ErrInternal, err)
	}

	// 4. Получаем активные бронирования на дату
	date := req.Date
	bookings, err := uc.bookingRepo.GetByFilter(ctx, domain.BookingsFilter{Date: &date})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	// 5. Определяем проверяемое время: явный список или сетка дня вместе с постоянными занятиями
	fixedTimes := availability.FixedSlotTimes(req.Date, req.Technique, weekly, overrides)
	candidates := mergeTimes(req.Times)
	if len(req.Times) == 0 {
		candidates = mergeTimes(fixedTimes, generateGrid(uc.hours))
	}
	candidates = dropPastTimes(candidates, req.Date, now, uc.hours.MinBookingNoticeMinutes)

	// 6. Считаем доступность
	slots := uc.resolver.Resolve(
		availability.Snapshot{Availability: weekly, Overrides: overrides, Bookings: bookings},
		availability.Query{
			Date:         req.Date,
			Technique:    req.Technique,
			Participants: req.Participants,
			Times:        candidates,
		},
	)

	bookable := 0
	for _, slot := range slots {
		uc.observer.ObserveDecision(string(slot.BlockedReason))
		if slot.CanBook {
			bookable++
		}
	}

	uc.logger.Info("GetAvailableSlots: %d of %d times bookable for date=%s, technique=%s (bookings on date: %d)",
		bookable, len(slots), req.Date.Format(domain.DateFormat), req.Technique, len(bookings))

	return &Response{
		Date:         req.Date,
		Technique:    req.Technique,
		Participants: req.Participants,
		FixedTimes:   fixedTimes,
		Slots:        slots,
	}, nil
}
