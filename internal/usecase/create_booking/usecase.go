package create_booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
	"github.com/m04kA/SMC-CeramicsBooking/internal/service/availability"
)

const mixedTechniqueLabel = "mixed"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	checker      SlotChecker
	txManager    TransactionManager
	mailer       Mailer
	observer     BookingObserver
	policy       Policy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// mailer и observer могут быть nil
func NewUseCase(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	checker SlotChecker,
	txManager TransactionManager,
	mailer Mailer,
	observer BookingObserver,
	policy Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		checker:      checker,
		txManager:    txManager,
		mailer:       mailer,
		observer:     observer,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности и вставка идут в одной сериализуемой транзакции под advisory lock
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: product=%s (%q), participants=%d, slots=%d",
		req.Product.Type, req.Product.Name, req.ParticipantCount, len(req.Slots))

	req.Slots = normalizeSlots(req.Slots)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация дат и времени относительно текущего момента
	now := uc.timeProvider.Now()
	for _, slot := range req.Slots {
		if err := validateSlotTime(slot, now, uc.policy); err != nil {
			uc.logger.Warn("CreateBooking: slot time validation failed: %v", err)
			return nil, err
		}
	}

	// 3. Определяем технику один раз и сохраняем её в бронировании
	booking := uc.buildBooking(req)
	technique, ok := domain.ResolveTechnique(booking)
	if !ok && len(req.TechniqueAssignments) == 0 {
		uc.logger.Warn("CreateBooking: cannot determine technique for product %q", req.Product.Name)
		return nil, ErrInvalidTechnique
	}
	seats := seatRequests(technique, req)

	// Групповое занятие с разными группами мест хранится без единой техники
	if ok && storesSingleTechnique(technique, seats) {
		booking.Technique = &technique
	}

	var result *domain.Booking

	// 4. Проверка и создание в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Блокируем дату и группу мест до конца транзакции
		for _, key := range lockKeys(req.Slots, seats) {
			if err := uc.bookingRepo.LockSlot(txCtx, key); err != nil {
				uc.logger.Error("CreateBooking: failed to lock %s: %v", key, err)
				return fmt.Errorf("%w: failed to lock slot: %w", ErrInternal, err)
			}
		}

		// 4.2. Читаем расписание
		weekly, overrides, err := uc.settingsRepo.GetSchedule(txCtx)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get schedule settings: %v", err)
			return fmt.Errorf("%w: failed to get schedule settings: %w", ErrInternal, err)
		}

		// 4.3. Проверяем каждое время на свежих данных
		bookingsByDate := make(map[string][]*domain.Booking)
		for _, slot := range req.Slots {
			dateKey := slot.Date.Format(domain.DateFormat)
			existing, loaded := bookingsByDate[dateKey]
			if !loaded {
				date := slot.Date
				existing, err = uc.bookingRepo.GetByFilter(txCtx, domain.BookingsFilter{Date: &date})
				if err != nil {
					uc.logger.Error("CreateBooking: failed to get bookings for %s: %v", dateKey, err)
					return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
				}
				bookingsByDate[dateKey] = existing
			}

			snapshot := availability.Snapshot{Availability: weekly, Overrides: overrides, Bookings: existing}
			for _, seat := range seats {
				decision := uc.checker.CheckPart(snapshot, slot.Date, slot.Time, seat.technique, seat.participants, req.ParticipantCount)
				if !decision.CanBook {
					uc.logger.Warn("CreateBooking: %s %s not available for %s x%d: %s (booked %d, available %d)",
						dateKey, slot.Time, seat.technique, seat.participants,
						decision.BlockedReason, decision.BookedCount, decision.AvailableCount)
					return &SlotUnavailableError{Date: dateKey, Time: slot.Time.String(), Reason: decision.BlockedReason}
				}
			}
		}

		// 4.4. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, reference=%s", result.ID, result.Reference)

	if uc.observer != nil {
		uc.observer.ObserveBookingCreated(techniqueLabel(result))
	}

	// 5. Подтверждение отправляется после коммита, ошибка не отменяет бронирование
	if uc.mailer != nil {
		if err := uc.mailer.SendBookingConfirmation(ctx, result); err != nil {
			uc.logger.Warn("CreateBooking: failed to send confirmation for booking id=%d: %v", result.ID, err)
		}
	}

	return &Response{Booking: result}, nil
}

// buildBooking собирает бронирование из запроса
func (uc *UseCase) buildBooking(req *Request) *domain.Booking {
	slots := make([]domain.BookingSlot, 0, len(req.Slots))
	for _, s := range req.Slots {
		slots = append(slots, domain.BookingSlot{
			Date: s.Date.Format(domain.DateFormat),
			Time: s.Time.String(),
		})
	}

	var technique *domain.Technique
	if req.Technique != nil {
		t := *req.Technique
		technique = &t
	}

	return &domain.Booking{
		Reference:            uuid.NewString(),
		Product:              req.Product,
		Technique:            technique,
		ParticipantCount:     req.ParticipantCount,
		Slots:                slots,
		TechniqueAssignments: req.TechniqueAssignments,
		CustomerName:         strings.TrimSpace(req.CustomerName),
		CustomerEmail:        strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:        req.CustomerPhone,
		Notes:                req.Notes,
		Status:               domain.StatusActive,
	}
}

func techniqueLabel(b *domain.Booking) string {
	if b.Technique != nil {
		return string(*b.Technique)
	}
	return mixedTechniqueLabel
}
