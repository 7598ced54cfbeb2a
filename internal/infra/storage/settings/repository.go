package settings

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/psqlbuilder"
)

// Repository репозиторий для работы с настройками мастерской (таблица settings, значения в JSONB)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSchedule получает расписание постоянных занятий и исключения одним запросом.
// Отсутствующие ключи возвращаются пустыми, это не ошибка.
func (r *Repository) GetSchedule(ctx context.Context) (domain.WeeklyAvailability, domain.ScheduleOverrides, error) {
	rows, err := r.getByKeys(ctx, domain.SettingsKeyAvailability, domain.SettingsKeyScheduleOverrides)
	if err != nil {
		return nil, nil, fmt.Errorf("GetSchedule: %w", err)
	}

	availability := domain.WeeklyAvailability{}
	overrides := domain.ScheduleOverrides{}

	for _, row := range rows {
		switch row.Key {
		case domain.SettingsKeyAvailability:
			availability, err = decodeAvailability(row.Value)
		case domain.SettingsKeyScheduleOverrides:
			overrides, err = decodeOverrides(row.Value)
		}
		if err != nil {
			return nil, nil, err
		}
	}

	return availability, overrides, nil
}

// GetAvailability получает недельное расписание постоянных занятий
func (r *Repository) GetAvailability(ctx context.Context) (domain.WeeklyAvailability, error) {
	rows, err := r.getByKeys(ctx, domain.SettingsKeyAvailability)
	if err != nil {
		return nil, fmt.Errorf("GetAvailability: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrSettingNotFound
	}
	return decodeAvailability(rows[0].Value)
}

// GetScheduleOverrides получает исключения расписания по датам
func (r *Repository) GetScheduleOverrides(ctx context.Context) (domain.ScheduleOverrides, error) {
	rows, err := r.getByKeys(ctx, domain.SettingsKeyScheduleOverrides)
	if err != nil {
		return nil, fmt.Errorf("GetScheduleOverrides: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrSettingNotFound
	}
	return decodeOverrides(rows[0].Value)
}

// SaveAvailability сохраняет недельное расписание целиком
func (r *Repository) SaveAvailability(ctx context.Context, availability domain.WeeklyAvailability) error {
	data, err := encodeAvailability(availability)
	if err != nil {
		return err
	}
	return r.upsert(ctx, domain.SettingsKeyAvailability, data)
}

// SaveScheduleOverrides сохраняет все исключения расписания целиком
func (r *Repository) SaveScheduleOverrides(ctx context.Context, overrides domain.ScheduleOverrides) error {
	data, err := encodeOverrides(overrides)
	if err != nil {
		return err
	}
	return r.upsert(ctx, domain.SettingsKeyScheduleOverrides, data)
}

func (r *Repository) getByKeys(ctx context.Context, keys ...string) ([]settingRow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("key", "value", "updated_at").
		From("settings").
		Where(squirrel.Eq{"key": keys})

	// Внутри транзакции изменения исключений блокируем строку настроек
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]settingRow, 0, len(keys))
	if err := sqlx.StructScan(rows, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanRow, err)
	}

	return result, nil
}

func (r *Repository) upsert(ctx context.Context, key string, value []byte) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("settings").
		Columns("key", "value", "updated_at").
		Values(key, string(value), squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: upsert %s - build insert query: %w", ErrBuildQuery, key, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: upsert %s - execute: %w", ErrExecQuery, key, err)
	}

	return nil
}
