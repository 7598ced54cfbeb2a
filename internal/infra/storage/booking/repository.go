package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/ptr"
)

var bookingColumns = []string{
	"id",
	"reference",
	"product_type",
	"product_name",
	"product_technique",
	"technique",
	"participant_count",
	"slots",
	"technique_assignments",
	"customer_name",
	"customer_email",
	"customer_phone",
	"notes",
	"status",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Создание бронирования с проверкой доступности всегда идет в транзакции
// вместе с LockSlot, иначе два запроса могут занять одни и те же места.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	slots, err := encodeSlots(booking.Slots)
	if err != nil {
		return nil, err
	}
	assignments, err := encodeAssignments(booking.TechniqueAssignments)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"reference",
			"product_type",
			"product_name",
			"product_technique",
			"technique",
			"participant_count",
			"slots",
			"technique_assignments",
			"customer_name",
			"customer_email",
			"customer_phone",
			"notes",
			"status",
		).
		Values(
			booking.Reference,
			booking.Product.Type,
			booking.Product.Name,
			booking.Product.Details.Technique,
			booking.Technique,
			booking.ParticipantCount,
			string(slots),
			string(assignments),
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.Notes,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции (отмена) блокируем строку
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByFilter получает бронирования с фильтрацией
// Поддерживает фильтрацию по:
// - Дате слота (Date) - бронирование попадает, если хотя бы один слот на эту дату
// - Статусу (Status)
// - Включению неактивных бронирований (IncludeInactive)
//
// Примеры использования:
//
// 1. Активные бронирования на дату (для проверки доступности):
//    filter := domain.BookingsFilter{Date: &date}
//
// 2. Все бронирования на дату включая отменённые (для админки):
//    filter := domain.BookingsFilter{Date: &date, IncludeInactive: true}
func (r *Repository) GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings")

	// Фильтрация по дате слота через GIN индекс
	if filter.Date != nil {
		containment, err := dateContainment(filter.Date.Format(domain.DateFormat))
		if err != nil {
			return nil, err
		}
		selectBuilder = selectBuilder.Where(squirrel.Expr("slots @> ?::jsonb", containment))
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	selectBuilder = selectBuilder.OrderBy("created_at ASC", "id ASC")

	// В транзакции создания бронирования блокируем прочитанные строки
	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Cancel отменяет активное бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusActive}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCannotCancel
	}

	return nil
}

// ExpireBefore переводит в expired активные бронирования, у которых нет слотов на дату before или позже.
// Возвращает количество обновленных бронирований.
func (r *Repository) ExpireBefore(ctx context.Context, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusExpired).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusActive}).
		Where(squirrel.Expr(
			"NOT EXISTS (SELECT 1 FROM jsonb_array_elements(slots) AS s WHERE s->>'date' >= ?)",
			before.Format(domain.DateFormat),
		)).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ExpireBefore - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireBefore - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireBefore - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// LockSlot берет advisory lock по ключу "дата|группа мест" (например "2025-03-13|potters") до конца транзакции.
// Параллельные бронирования той же группы мест на эту дату ждут, пока первая транзакция завершится.
func (r *Repository) LockSlot(ctx context.Context, key string) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNotInTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("pg_advisory_xact_lock(hashtext(?))", key)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: LockSlot - build query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: LockSlot - execute: %w", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в бронирование
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking                  domain.Booking
		productTechnique         sql.NullString
		technique                sql.NullString
		slotsRaw, assignmentsRaw []byte
		createdAt, updatedAt     sql.NullTime
		cancelledAt              sql.NullTime
		customerPhone, notes     sql.NullString
		cancellationReason       sql.NullString
	)

	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.Product.Type,
		&booking.Product.Name,
		&productTechnique,
		&technique,
		&booking.ParticipantCount,
		&slotsRaw,
		&assignmentsRaw,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&customerPhone,
		&notes,
		&booking.Status,
		&cancellationReason,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if booking.Slots, err = decodeSlots(slotsRaw); err != nil {
		return nil, err
	}
	if booking.TechniqueAssignments, err = decodeAssignments(assignmentsRaw); err != nil {
		return nil, err
	}

	if productTechnique.Valid {
		booking.Product.Details.Technique = ptr.Ptr(domain.Technique(productTechnique.String))
	}
	if technique.Valid {
		booking.Technique = ptr.Ptr(domain.Technique(technique.String))
	}
	if customerPhone.Valid {
		booking.CustomerPhone = &customerPhone.String
	}
	if notes.Valid {
		booking.Notes = &notes.String
	}
	if cancellationReason.Valid {
		booking.CancellationReason = &cancellationReason.String
	}
	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
