package catalog

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/dbmetrics"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/psqlbuilder"
)

// Repository репозиторий каталога приборов, свободных слотов и статистики
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetDashboardStats получает агрегированные счетчики для дашборда
func (r *Repository) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"(SELECT COUNT(*) FROM students)",
		"(SELECT COUNT(*) FROM instruments)",
		"(SELECT COUNT(*) FROM bookings WHERE status = 'Active')",
		"(SELECT COUNT(*) FROM bookings WHERE status = 'Completed')",
		"(SELECT COUNT(*) FROM schedules WHERE status = 'Available')",
		"(SELECT COUNT(DISTINCT student_id) FROM quota_plans WHERE status = 'Penalized')",
	).ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDashboardStats - build select query: %w", ErrBuildQuery, err)
	}

	var stats domain.DashboardStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalStudents,
		&stats.TotalInstruments,
		&stats.ActiveBookings,
		&stats.CompletedBookings,
		&stats.AvailableSlots,
		&stats.PenalizedStudents,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDashboardStats - scan stats: %w", ErrScanRow, err)
	}

	return &stats, nil
}

// ListInstrumentTypes получает каталог типов приборов, упорядоченный по уровню доступа и названию
func (r *Repository) ListInstrumentTypes(ctx context.Context) ([]*domain.InstrumentType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"model",
		"description",
		"access_level",
	).
		From("instrument_types").
		OrderBy("access_level", "name").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListInstrumentTypes - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListInstrumentTypes - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	types := make([]*domain.InstrumentType, 0)
	for rows.Next() {
		var it domain.InstrumentType
		if err := rows.Scan(&it.ID, &it.Name, &it.Model, &it.Description, &it.AccessLevel); err != nil {
			return nil, fmt.Errorf("%w: ListInstrumentTypes - scan row: %w", ErrScanRow, err)
		}
		types = append(types, &it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListInstrumentTypes - rows error: %w", ErrScanRow, err)
	}

	return types, nil
}

// ListAvailableSlots получает свободные слоты
// Опционально фильтрует по типу прибора и дате
func (r *Repository) ListAvailableSlots(ctx context.Context, filter domain.SlotsFilter) ([]*domain.AvailableSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"s.id",
		"s.date",
		"s.start_time",
		"s.end_time",
		"s.status",
		"i.id",
		"it.id",
		"it.name",
		"it.model",
		"it.access_level",
		"l.building",
		"l.room_no",
	).
		From("schedules s").
		Join("instruments i ON i.id = s.instrument_id").
		Join("instrument_types it ON it.id = i.instrument_type_id").
		Join("locations l ON l.id = i.location_id").
		Where(squirrel.Eq{"s.status": domain.ScheduleAvailable}).
		OrderBy("s.date", "s.start_time", "it.name")

	// Фильтрация по типу прибора
	if filter.InstrumentTypeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"it.id": *filter.InstrumentTypeID})
	}

	// Фильтрация по дате
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.date": filter.Date.Format(domain.DateFormat)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailableSlots - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailableSlots - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.AvailableSlot, 0)
	for rows.Next() {
		var s domain.AvailableSlot
		err := rows.Scan(
			&s.ScheduleID,
			&s.Date,
			&s.StartTime,
			&s.EndTime,
			&s.Status,
			&s.InstrumentID,
			&s.InstrumentTypeID,
			&s.InstrumentName,
			&s.Model,
			&s.AccessLevel,
			&s.Building,
			&s.RoomNo,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListAvailableSlots - scan row: %w", ErrScanRow, err)
		}
		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAvailableSlots - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}
