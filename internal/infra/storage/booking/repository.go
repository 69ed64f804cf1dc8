package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/dbmetrics"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/psqlbuilder"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/types"
)

// Repository репозиторий для работы с бронированиями, их строками и слотами расписания
type Repository struct {
	db    DBExecutor
	codec FieldCodec
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, codec FieldCodec) *Repository {
	return &Repository{db: db, codec: codec}
}

var bookingColumns = []string{
	"id",
	"student_id",
	"status",
	"booked_at",
	"check_in_time_encrypted",
	"check_out_time_encrypted",
	"cancellation_reason",
	"canceled_at",
}

// Create создает бронирование в статусе Active
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns("student_id", "status").
		Values(booking.StudentID, booking.Status).
		Suffix("RETURNING id, booked_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &booking.BookedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// CreateLines создает по одной строке бронирования на каждый слот
func (r *Repository) CreateLines(ctx context.Context, bookingID int64, scheduleIDs []int64) ([]*domain.BookingLine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("booking_lines").
		Columns("booking_id", "schedule_id")
	for _, scheduleID := range scheduleIDs {
		insertBuilder = insertBuilder.Values(bookingID, scheduleID)
	}

	query, args, err := insertBuilder.Suffix("RETURNING id, schedule_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateLines - build insert query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateLines - execute insert: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	lines := make([]*domain.BookingLine, 0, len(scheduleIDs))
	for rows.Next() {
		line := &domain.BookingLine{BookingID: bookingID}
		if err := rows.Scan(&line.ID, &line.ScheduleID); err != nil {
			return nil, fmt.Errorf("%w: CreateLines - scan row: %w", ErrScanRow, err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CreateLines - rows error: %w", ErrScanRow, err)
	}

	return lines, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, false, "GetByID")
}

// GetByIDForUpdate получает бронирование по ID и блокирует строку до конца транзакции
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, true, "GetByIDForUpdate")
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool, op string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	var (
		booking            domain.Booking
		checkIn, checkOut  []byte
		cancellationReason sql.NullString
		canceledAt         sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.StudentID,
		&booking.Status,
		&booking.BookedAt,
		&checkIn,
		&checkOut,
		&cancellationReason,
		&canceledAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %w", ErrScanRow, op, err)
	}

	if booking.CheckInTime, err = r.decryptTime(checkIn); err != nil {
		return nil, fmt.Errorf("%w: %s - check-in time: %w", ErrFieldCodec, op, err)
	}
	if booking.CheckOutTime, err = r.decryptTime(checkOut); err != nil {
		return nil, fmt.Errorf("%w: %s - check-out time: %w", ErrFieldCodec, op, err)
	}
	if cancellationReason.Valid {
		booking.CancellationReason = &cancellationReason.String
	}
	if canceledAt.Valid {
		booking.CanceledAt = &canceledAt.Time
	}

	return &booking, nil
}

// Cancel переводит Active бронирование в Canceled
// Возвращает ErrInvalidStatus, если бронирование уже не Active
func (r *Repository) Cancel(ctx context.Context, id int64, reason string, canceledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.BookingCanceled).
		Set("cancellation_reason", reason).
		Set("canceled_at", canceledAt).
		Where(squirrel.Eq{"id": id, "status": domain.BookingActive}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %w", ErrBuildQuery, err)
	}

	return r.execActiveUpdate(ctx, executor, "Cancel", query, args)
}

// SetCheckIn сохраняет зашифрованное время прихода
func (r *Repository) SetCheckIn(ctx context.Context, id int64, checkIn types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	sealed, err := r.codec.Encrypt(checkIn.String())
	if err != nil {
		return fmt.Errorf("%w: SetCheckIn - encrypt: %w", ErrFieldCodec, err)
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set("check_in_time_encrypted", sealed).
		Where(squirrel.Eq{"id": id, "status": domain.BookingActive}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetCheckIn - build update query: %w", ErrBuildQuery, err)
	}

	return r.execActiveUpdate(ctx, executor, "SetCheckIn", query, args)
}

// Complete сохраняет зашифрованное время ухода и переводит бронирование в Completed
func (r *Repository) Complete(ctx context.Context, id int64, checkOut types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	sealed, err := r.codec.Encrypt(checkOut.String())
	if err != nil {
		return fmt.Errorf("%w: Complete - encrypt: %w", ErrFieldCodec, err)
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set("check_out_time_encrypted", sealed).
		Set("status", domain.BookingCompleted).
		Where(squirrel.Eq{"id": id, "status": domain.BookingActive}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Complete - build update query: %w", ErrBuildQuery, err)
	}

	return r.execActiveUpdate(ctx, executor, "Complete", query, args)
}

func (r *Repository) execActiveUpdate(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrInvalidStatus
	}

	return nil
}

func (r *Repository) decryptTime(sealed []byte) (*types.TimeString, error) {
	plain, err := r.codec.DecryptNullable(sealed)
	if err != nil || plain == nil {
		return nil, err
	}
	ts, err := types.NewTimeStringFromString(*plain)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}
