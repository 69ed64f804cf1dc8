package policy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/dbmetrics"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/psqlbuilder"
)

// Repository репозиторий политик штрафов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политик штрафов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var policyColumns = []string{
	"id",
	"instrument_type_id",
	"late_cancel_window_minutes",
	"check_in_grace_minutes",
	"check_out_grace_minutes",
	"penalty_points",
	"penalized_threshold",
	"created_at",
	"updated_at",
}

// GetByInstrumentType получает политику для типа прибора
// instrumentTypeID == nil - глобальная политика
func (r *Repository) GetByInstrumentType(ctx context.Context, instrumentTypeID *int64) (*domain.PenaltyPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(policyColumns...).From("penalty_policies")

	// Фильтрация по instrument_type_id (NULL или конкретное значение)
	if instrumentTypeID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"instrument_type_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"instrument_type_id": *instrumentTypeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByInstrumentType - build select query: %w", ErrBuildQuery, err)
	}

	policy, err := scanPolicy(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByInstrumentType - scan policy: %w", ErrScanRow, err)
	}

	return policy, nil
}

// GetWithHierarchy получает политику с учетом иерархии приоритетов:
// 1. Политика для конкретного типа прибора (если instrumentTypeID указан)
// 2. Глобальная политика (NULL)
//
// Если политика не найдена ни на одном уровне, возвращает ErrPolicyNotFound.
// Значения по умолчанию из config.toml подставляет сервис.
func (r *Repository) GetWithHierarchy(ctx context.Context, instrumentTypeID *int64) (*domain.PenaltyPolicy, error) {
	// 1. Политика для типа прибора
	if instrumentTypeID != nil {
		policy, err := r.GetByInstrumentType(ctx, instrumentTypeID)
		if err == nil {
			return policy, nil
		}
		if !errors.Is(err, ErrPolicyNotFound) {
			return nil, fmt.Errorf("GetWithHierarchy - level 1 (instrument type): %w", err)
		}
	}

	// 2. Глобальная политика
	policy, err := r.GetByInstrumentType(ctx, nil)
	if err != nil {
		if errors.Is(err, ErrPolicyNotFound) {
			return nil, ErrPolicyNotFound
		}
		return nil, fmt.Errorf("GetWithHierarchy - level 2 (global): %w", err)
	}

	return policy, nil
}

// Upsert создает или обновляет политику для типа прибора (или глобальную)
func (r *Repository) Upsert(ctx context.Context, policy *domain.PenaltyPolicy) (*domain.PenaltyPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("penalty_policies").
		Columns(
			"instrument_type_id",
			"late_cancel_window_minutes",
			"check_in_grace_minutes",
			"check_out_grace_minutes",
			"penalty_points",
			"penalized_threshold",
		).
		Values(
			policy.InstrumentTypeID,
			policy.LateCancelWindowMinutes,
			policy.CheckInGraceMinutes,
			policy.CheckOutGraceMinutes,
			policy.PenaltyPoints,
			policy.PenalizedThreshold,
		).
		Suffix("ON CONFLICT ON CONSTRAINT uq_penalty_policies_type DO UPDATE SET " +
			"late_cancel_window_minutes = EXCLUDED.late_cancel_window_minutes, " +
			"check_in_grace_minutes = EXCLUDED.check_in_grace_minutes, " +
			"check_out_grace_minutes = EXCLUDED.check_out_grace_minutes, " +
			"penalty_points = EXCLUDED.penalty_points, " +
			"penalized_threshold = EXCLUDED.penalized_threshold, " +
			"updated_at = NOW() " +
			"RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&policy.ID, &policy.CreatedAt, &policy.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	return policy, nil
}

func scanPolicy(row *sql.Row) (*domain.PenaltyPolicy, error) {
	var (
		policy           domain.PenaltyPolicy
		instrumentTypeID sql.NullInt64
	)

	err := row.Scan(
		&policy.ID,
		&instrumentTypeID,
		&policy.LateCancelWindowMinutes,
		&policy.CheckInGraceMinutes,
		&policy.CheckOutGraceMinutes,
		&policy.PenaltyPoints,
		&policy.PenalizedThreshold,
		&policy.CreatedAt,
		&policy.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if instrumentTypeID.Valid {
		id := instrumentTypeID.Int64
		policy.InstrumentTypeID = &id
	}

	return &policy, nil
}
