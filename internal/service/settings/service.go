package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
	settingsRepo "github.com/m04kA/SMC-CeramicsBooking/internal/infra/storage/settings"
	"github.com/m04kA/SMC-CeramicsBooking/internal/service/settings/models"
)

// Service сервис для работы с расписанием постоянных занятий
type Service struct {
	settingsRepo SettingsRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	settingsRepo SettingsRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetSchedule получает недельное расписание и исключения по датам
// Публичный метод - используется виджетом бронирования
func (s *Service) GetSchedule(ctx context.Context) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule settings")

	availability, overrides, err := s.settingsRepo.GetSchedule(ctx)
	if err != nil {
		s.logger.Error("GetSchedule: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainSchedule(availability, overrides), nil
}

// UpdateAvailability полностью заменяет недельное расписание
// Доступно только администраторам
func (s *Service) UpdateAvailability(ctx context.Context, req *models.UpdateAvailabilityRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateAvailability: updating weekly availability by admin=%d", req.AdminID)

	availability := req.ToDomainAvailability()
	if err := validateAvailability(availability); err != nil {
		s.logger.Warn("UpdateAvailability: validation failed: %v", err)
		return nil, err
	}

	for day, slots := range availability {
		availability[day] = normalizeSlots(slots)
	}

	if err := s.settingsRepo.SaveAvailability(ctx, availability); err != nil {
		s.logger.Error("UpdateAvailability: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateAvailability - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("UpdateAvailability: successfully saved availability for %d days", len(availability))
	return s.GetSchedule(ctx)
}

// SetOverride задает исключение расписания на дату
// Slots=nil закрывает день для постоянных занятий, непустой список заменяет расписание дня недели
func (s *Service) SetOverride(ctx context.Context, req *models.SetOverrideRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("SetOverride: setting override for date=%s (closed=%t) by admin=%d",
		req.Date, req.Slots == nil, req.AdminID)

	if _, err := parseOverrideDate(req.Date); err != nil {
		s.logger.Warn("SetOverride: invalid date=%s", req.Date)
		return nil, err
	}

	override := req.ToDomainOverride()
	if err := validateSlots(override.Slots); err != nil {
		s.logger.Warn("SetOverride: validation failed: %v", err)
		return nil, err
	}
	override.Slots = normalizeSlots(override.Slots)

	// Сериализуемая транзакция: строки исключений может еще не быть, FOR UPDATE ее не заблокирует
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		overrides, err := s.loadOverrides(txCtx)
		if err != nil {
			return err
		}

		overrides[req.Date] = override

		if err := s.settingsRepo.SaveScheduleOverrides(txCtx, overrides); err != nil {
			return fmt.Errorf("%w: SetOverride - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("SetOverride: failed to save override for date=%s: %v", req.Date, err)
		return nil, err
	}

	s.logger.Info("SetOverride: successfully saved override for date=%s", req.Date)
	return s.GetSchedule(ctx)
}

// DeleteOverride удаляет исключение, дата снова использует расписание дня недели
func (s *Service) DeleteOverride(ctx context.Context, req *models.DeleteOverrideRequest) error {
	s.logger.Info("DeleteOverride: deleting override for date=%s by admin=%d", req.Date, req.AdminID)

	if _, err := parseOverrideDate(req.Date); err != nil {
		s.logger.Warn("DeleteOverride: invalid date=%s", req.Date)
		return err
	}

	// Сериализуемая транзакция: строки исключений может еще не быть, FOR UPDATE ее не заблокирует
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		overrides, err := s.loadOverrides(txCtx)
		if err != nil {
			return err
		}

		if _, ok := overrides[req.Date]; !ok {
			return ErrOverrideNotFound
		}
		delete(overrides, req.Date)

		if err := s.settingsRepo.SaveScheduleOverrides(txCtx, overrides); err != nil {
			return fmt.Errorf("%w: DeleteOverride - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrOverrideNotFound) {
			s.logger.Warn("DeleteOverride: no override for date=%s", req.Date)
			return err
		}
		s.logger.Error("DeleteOverride: failed to delete override for date=%s: %v", req.Date, err)
		return err
	}

	s.logger.Info("DeleteOverride: successfully deleted override for date=%s", req.Date)
	return nil
}

// loadOverrides читает исключения, отсутствие записи означает пустой набор
func (s *Service) loadOverrides(ctx context.Context) (domain.ScheduleOverrides, error) {
	overrides, err := s.settingsRepo.GetScheduleOverrides(ctx)
	if errors.Is(err, settingsRepo.ErrSettingNotFound) {
		return domain.ScheduleOverrides{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load overrides: %w", ErrInternal, err)
	}
	if overrides == nil {
		overrides = domain.ScheduleOverrides{}
	}
	return overrides, nil
}
