package student

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/dbmetrics"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/psqlbuilder"
)

// Repository репозиторий студентов, планов квот и штрафов
type Repository struct {
	db    DBExecutor
	codec FieldCodec
}

// NewRepository создает новый экземпляр репозитория студентов
func NewRepository(db DBExecutor, codec FieldCodec) *Repository {
	return &Repository{db: db, codec: codec}
}

// currentPlanStatuses статусы плана, который считается действующим
var currentPlanStatuses = []domain.QuotaStatus{domain.QuotaActive, domain.QuotaPenalized}

// GetCurrentQuotaPlan получает действующий план квоты студента:
// статус Active или Penalized, срок не истек на дату today, самый поздний срок.
// Внутри транзакции строка плана блокируется до её завершения.
func (r *Repository) GetCurrentQuotaPlan(ctx context.Context, studentID int64, today time.Time) (*domain.QuotaPlan, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"student_id",
		"access_level_encrypted",
		"penalty_points",
		"status",
		"expiration_date",
	).
		From("quota_plans").
		Where(squirrel.Eq{"student_id": studentID, "status": currentPlanStatuses}).
		Where(squirrel.GtOrEq{"expiration_date": today.Format(domain.DateFormat)}).
		OrderBy("expiration_date DESC", "id DESC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCurrentQuotaPlan - build select query: %w", ErrBuildQuery, err)
	}

	var (
		plan        domain.QuotaPlan
		accessLevel []byte
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&plan.ID,
		&plan.StudentID,
		&accessLevel,
		&plan.PenaltyPoints,
		&plan.Status,
		&plan.ExpirationDate,
	)

	if err == sql.ErrNoRows {
		return nil, ErrQuotaPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCurrentQuotaPlan - scan plan: %w", ErrScanRow, err)
	}

	level, err := r.codec.Decrypt(accessLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCurrentQuotaPlan - access level: %w", ErrFieldCodec, err)
	}
	plan.AccessLevel = domain.AccessLevel(level)

	return &plan, nil
}

// UpdateQuotaPlanPenalty сохраняет баланс штрафных баллов и статус плана
func (r *Repository) UpdateQuotaPlanPenalty(ctx context.Context, plan *domain.QuotaPlan) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("quota_plans").
		Set("penalty_points", plan.PenaltyPoints).
		Set("status", plan.Status).
		Where(squirrel.Eq{"id": plan.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateQuotaPlanPenalty - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateQuotaPlanPenalty - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateQuotaPlanPenalty - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrQuotaPlanNotFound
	}

	return nil
}

// CreatePenalty сохраняет запись о штрафе
func (r *Repository) CreatePenalty(ctx context.Context, penalty *domain.Penalty) (*domain.Penalty, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("penalties").
		Columns("student_id", "booking_id", "reason", "points", "issued_at").
		Values(penalty.StudentID, penalty.BookingID, penalty.Reason, penalty.Points, penalty.IssuedAt).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreatePenalty - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&penalty.ID); err != nil {
		return nil, fmt.Errorf("%w: CreatePenalty - execute insert: %w", ErrExecQuery, err)
	}

	return penalty, nil
}

// ListStudents получает список студентов с расшифрованными email и специальностью
// и снимком действующего плана квоты (может отсутствовать)
func (r *Repository) ListStudents(ctx context.Context, today time.Time) ([]*domain.StudentSummary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id",
		"u.first_name || ' ' || u.last_name",
		"u.email_encrypted",
		"s.major_encrypted",
		"q.access_level_encrypted",
		"q.penalty_points",
		"q.status",
	).
		From("students s").
		Join("users u ON u.id = s.id").
		JoinClause(
			"LEFT JOIN LATERAL (SELECT qp.access_level_encrypted, qp.penalty_points, qp.status "+
				"FROM quota_plans qp WHERE qp.student_id = s.id AND qp.status IN (?, ?) AND qp.expiration_date >= ? "+
				"ORDER BY qp.expiration_date DESC, qp.id DESC LIMIT 1) q ON TRUE",
			domain.QuotaActive, domain.QuotaPenalized, today.Format(domain.DateFormat),
		).
		OrderBy("s.id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListStudents - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStudents - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	students := make([]*domain.StudentSummary, 0)

	for rows.Next() {
		var (
			st                        domain.StudentSummary
			email, major, accessLevel []byte
			points                    sql.NullInt64
			status                    sql.NullString
		)

		if err := rows.Scan(&st.StudentID, &st.StudentName, &email, &major, &accessLevel, &points, &status); err != nil {
			return nil, fmt.Errorf("%w: ListStudents - scan row: %w", ErrScanRow, err)
		}

		if st.Email, err = r.codec.Decrypt(email); err != nil {
			return nil, fmt.Errorf("%w: ListStudents - email: %w", ErrFieldCodec, err)
		}
		if st.Major, err = r.codec.Decrypt(major); err != nil {
			return nil, fmt.Errorf("%w: ListStudents - major: %w", ErrFieldCodec, err)
		}

		level, err := r.codec.DecryptNullable(accessLevel)
		if err != nil {
			return nil, fmt.Errorf("%w: ListStudents - access level: %w", ErrFieldCodec, err)
		}
		if level != nil {
			al := domain.AccessLevel(*level)
			st.AccessLevel = &al
		}
		if points.Valid {
			p := int(points.Int64)
			st.PenaltyPoints = &p
		}
		if status.Valid {
			qs := domain.QuotaStatus(status.String)
			st.QuotaStatus = &qs
		}

		students = append(students, &st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStudents - rows error: %w", ErrScanRow, err)
	}

	return students, nil
}
