package booking

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/dbmetrics"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/psqlbuilder"
)

// List получает строки бронирований (по одной на слот) с данными студента,
// прибора и места. Опционально фильтрует по студенту и статусу.
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"b.id",
		"b.status",
		"b.booked_at",
		"st.id",
		"u.first_name || ' ' || u.last_name",
		"u.email_encrypted",
		"it.name",
		"it.model",
		"it.access_level",
		"i.id",
		"s.id",
		"s.date",
		"s.start_time",
		"s.end_time",
		"b.check_in_time_encrypted",
		"b.check_out_time_encrypted",
		"l.building",
		"l.room_no",
	).
		From("bookings b").
		Join("students st ON st.id = b.student_id").
		Join("users u ON u.id = st.id").
		Join("booking_lines bl ON bl.booking_id = b.id").
		Join("schedules s ON s.id = bl.schedule_id").
		Join("instruments i ON i.id = s.instrument_id").
		Join("instrument_types it ON it.id = i.instrument_type_id").
		Join("locations l ON l.id = i.location_id").
		OrderBy("b.booked_at DESC", "b.id DESC", "s.date", "s.start_time")

	// Фильтрация по студенту
	if filter.StudentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.student_id": *filter.StudentID})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BookingDetails, 0)

	for rows.Next() {
		var (
			d                 domain.BookingDetails
			email             []byte
			checkIn, checkOut []byte
		)

		err := rows.Scan(
			&d.BookingID,
			&d.BookingStatus,
			&d.BookedAt,
			&d.StudentID,
			&d.StudentName,
			&email,
			&d.InstrumentName,
			&d.Model,
			&d.InstrumentAccessLevel,
			&d.InstrumentID,
			&d.ScheduleID,
			&d.ScheduleDate,
			&d.StartTime,
			&d.EndTime,
			&checkIn,
			&checkOut,
			&d.Building,
			&d.RoomNo,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}

		if d.StudentEmail, err = r.codec.Decrypt(email); err != nil {
			return nil, fmt.Errorf("%w: List - email: %w", ErrFieldCodec, err)
		}
		if d.CheckInTime, err = r.decryptTime(checkIn); err != nil {
			return nil, fmt.Errorf("%w: List - check-in time: %w", ErrFieldCodec, err)
		}
		if d.CheckOutTime, err = r.decryptTime(checkOut); err != nil {
			return nil, fmt.Errorf("%w: List - check-out time: %w", ErrFieldCodec, err)
		}

		result = append(result, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}
