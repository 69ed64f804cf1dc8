package booking

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/dbmetrics"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/psqlbuilder"
)

var scheduleColumns = []string{
	"s.id",
	"s.instrument_id",
	"s.date",
	"s.start_time",
	"s.end_time",
	"s.status",
	"it.id",
	"it.access_level",
}

// LockSchedules получает слоты по ID и блокирует их строки до конца транзакции.
// Строки блокируются в порядке id, чтобы параллельные бронирования с пересекающимися
// наборами слотов не взаимоблокировались. Отсутствующие ID просто не попадают в результат.
func (r *Repository) LockSchedules(ctx context.Context, ids []int64) ([]*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("schedules s").
		Join("instruments i ON i.id = s.instrument_id").
		Join("instrument_types it ON it.id = i.instrument_type_id").
		Where(squirrel.Eq{"s.id": ids}).
		OrderBy("s.id").
		Suffix("FOR UPDATE OF s").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: LockSchedules - build select query: %w", ErrBuildQuery, err)
	}

	return r.querySchedules(ctx, executor, "LockSchedules", query, args)
}

// GetSchedulesByBooking получает слоты бронирования, упорядоченные по дате и времени начала
func (r *Repository) GetSchedulesByBooking(ctx context.Context, bookingID int64) ([]*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("booking_lines bl").
		Join("schedules s ON s.id = bl.schedule_id").
		Join("instruments i ON i.id = s.instrument_id").
		Join("instrument_types it ON it.id = i.instrument_type_id").
		Where(squirrel.Eq{"bl.booking_id": bookingID}).
		OrderBy("s.date", "s.start_time", "s.id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedulesByBooking - build select query: %w", ErrBuildQuery, err)
	}

	return r.querySchedules(ctx, executor, "GetSchedulesByBooking", query, args)
}

// ReserveSchedules переводит слоты Available -> Booked условным UPDATE.
// Возвращает количество реально забронированных слотов: меньше len(ids),
// если какой-то слот уже занят параллельной транзакцией.
func (r *Repository) ReserveSchedules(ctx context.Context, ids []int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedules").
		Set("status", domain.ScheduleBooked).
		Where(squirrel.Eq{"id": ids, "status": domain.ScheduleAvailable}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ReserveSchedules - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ReserveSchedules - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ReserveSchedules - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// UpdateSchedulesStatus устанавливает статус слотам бронирования
func (r *Repository) UpdateSchedulesStatus(ctx context.Context, ids []int64, status domain.ScheduleStatus) error {
	if len(ids) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedules").
		Set("status", status).
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSchedulesStatus - build update query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpdateSchedulesStatus - execute update: %w", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) querySchedules(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.Schedule, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		var s domain.Schedule
		err := rows.Scan(
			&s.ID,
			&s.InstrumentID,
			&s.Date,
			&s.StartTime,
			&s.EndTime,
			&s.Status,
			&s.InstrumentTypeID,
			&s.RequiredAccessLevel,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		schedules = append(schedules, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return schedules, nil
}
