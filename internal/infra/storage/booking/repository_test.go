package booking

import (
	"bytes"
	"context"
	"database/sql"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/dbmetrics"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/fieldcodec"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/pgerrors"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/ptr"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/types"
)

var slotDate = time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC)

func newRepository(t *testing.T) (*Repository, sqlmock.Sqlmock, *sql.DB, *fieldcodec.Codec) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	codec, err := fieldcodec.New(bytes.Repeat([]byte{7}, fieldcodec.KeySize))
	require.NoError(t, err)

	return NewRepository(db, codec), mock, db, codec
}

// sqlPattern собирает регулярку из фрагментов запроса, идущих в указанном порядке
func sqlPattern(fragments ...string) string {
	quoted := make([]string, len(fragments))
	for i, f := range fragments {
		quoted[i] = regexp.QuoteMeta(f)
	}
	return strings.Join(quoted, ".*")
}

// inTx открывает транзакцию sqlmock и кладет её в контекст
func inTx(t *testing.T, db *sql.DB, mock sqlmock.Sqlmock) (context.Context, *sql.Tx) {
	t.Helper()

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)
	return dbmetrics.WithTx(context.Background(), &dbmetrics.SqlTxWrapper{Tx: tx}), tx
}

func scheduleRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "instrument_id", "date", "start_time", "end_time", "status", "type_id", "access_level"})
}

func TestLockSchedules_LocksRowsInIDOrder(t *testing.T) {
	repo, mock, db, _ := newRepository(t)
	ctx, tx := inTx(t, db, mock)

	mock.ExpectQuery(sqlPattern(
		"FROM schedules s",
		"JOIN instruments i ON i.id = s.instrument_id",
		"WHERE s.id IN ($1,$2)",
		"ORDER BY s.id FOR UPDATE OF s",
	)).
		WithArgs(int64(11), int64(10)).
		WillReturnRows(scheduleRows().
			AddRow(int64(10), int64(110), slotDate, "09:00:00", "10:00:00", "Available", int64(1), "Level01").
			AddRow(int64(11), int64(111), slotDate, "10:00:00", "11:00:00", "Booked", int64(1), "Level02"))
	mock.ExpectCommit()

	schedules, err := repo.LockSchedules(ctx, []int64{11, 10})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	require.Len(t, schedules, 2)
	assert.Equal(t, int64(10), schedules[0].ID)
	assert.Equal(t, domain.ScheduleAvailable, schedules[0].Status)
	assert.Equal(t, types.TimeString("09:00:00"), schedules[0].StartTime)
	assert.Equal(t, domain.AccessLevel("Level02"), schedules[1].RequiredAccessLevel)
	assert.Equal(t, domain.ScheduleBooked, schedules[1].Status)
}

func TestLockSchedules_QueryCanceled(t *testing.T) {
	repo, mock, _, _ := newRepository(t)

	mock.ExpectQuery(sqlPattern("FOR UPDATE OF s")).
		WithArgs(int64(10)).
		WillReturnError(&pq.Error{Code: "57014"})

	_, err := repo.LockSchedules(context.Background(), []int64{10})
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.True(t, pgerrors.IsUnavailable(err))
}

func TestReserveSchedules_OnlyAvailableRows(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
	}{
		{name: "all slots reserved", affected: 2},
		{name: "one slot taken by a concurrent booking", affected: 1},
		{name: "every slot already taken", affected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, _, _ := newRepository(t)

			mock.ExpectExec(sqlPattern("UPDATE schedules SET status = $1 WHERE id IN ($2,$3) AND status = $4")).
				WithArgs(domain.ScheduleBooked, int64(10), int64(11), domain.ScheduleAvailable).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			reserved, err := repo.ReserveSchedules(context.Background(), []int64{10, 11})
			require.NoError(t, err)
			assert.Equal(t, tt.affected, reserved)
		})
	}
}

func TestReserveSchedules_SerializationFailure(t *testing.T) {
	repo, mock, _, _ := newRepository(t)

	mock.ExpectExec(sqlPattern("UPDATE schedules")).
		WillReturnError(&pq.Error{Code: "40001"})

	_, err := repo.ReserveSchedules(context.Background(), []int64{10})
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.True(t, pgerrors.IsSerializationFailure(err))
}

func TestUpdateSchedulesStatus(t *testing.T) {
	repo, mock, _, _ := newRepository(t)

	mock.ExpectExec(sqlPattern("UPDATE schedules SET status = $1 WHERE id IN ($2,$3)")).
		WithArgs(domain.ScheduleAvailable, int64(10), int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.UpdateSchedulesStatus(context.Background(), []int64{10, 11}, domain.ScheduleAvailable))

	// пустой список не ходит в БД
	require.NoError(t, repo.UpdateSchedulesStatus(context.Background(), nil, domain.ScheduleAvailable))
}

func TestCreateAndCreateLines(t *testing.T) {
	repo, mock, _, _ := newRepository(t)
	bookedAt := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(sqlPattern("INSERT INTO bookings (student_id,status) VALUES ($1,$2) RETURNING id, booked_at")).
		WithArgs(int64(1), domain.BookingActive).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booked_at"}).AddRow(int64(500), bookedAt))
	mock.ExpectQuery(sqlPattern("INSERT INTO booking_lines (booking_id,schedule_id) VALUES ($1,$2),($3,$4) RETURNING id, schedule_id")).
		WithArgs(int64(500), int64(10), int64(500), int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "schedule_id"}).AddRow(int64(1), int64(10)).AddRow(int64(2), int64(11)))

	booking, err := repo.Create(context.Background(), &domain.Booking{StudentID: 1, Status: domain.BookingActive})
	require.NoError(t, err)
	assert.Equal(t, int64(500), booking.ID)
	assert.Equal(t, bookedAt, booking.BookedAt)

	lines, err := repo.CreateLines(context.Background(), booking.ID, []int64{10, 11})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, int64(500), lines[1].BookingID)
	assert.Equal(t, int64(11), lines[1].ScheduleID)
}

func TestGetByIDForUpdate(t *testing.T) {
	repo, mock, _, codec := newRepository(t)
	sealed, err := codec.Encrypt("10:05:00")
	require.NoError(t, err)

	mock.ExpectQuery(sqlPattern("FROM bookings WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(500)).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(int64(500), int64(1), "Active", slotDate, sealed, nil, nil, nil))

	booking, err := repo.GetByIDForUpdate(context.Background(), 500)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingActive, booking.Status)
	require.NotNil(t, booking.CheckInTime)
	assert.Equal(t, types.TimeString("10:05:00"), *booking.CheckInTime)
	assert.Nil(t, booking.CheckOutTime)
	assert.Nil(t, booking.CanceledAt)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, _, _ := newRepository(t)

	mock.ExpectQuery(sqlPattern("FROM bookings WHERE id = $1")).
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	_, err := repo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel(t *testing.T) {
	canceledAt := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	pattern := sqlPattern("UPDATE bookings SET status = $1, cancellation_reason = $2, canceled_at = $3 WHERE id = $4 AND status = $5")

	t.Run("active booking", func(t *testing.T) {
		repo, mock, _, _ := newRepository(t)
		mock.ExpectExec(pattern).
			WithArgs(domain.BookingCanceled, "sick", canceledAt, int64(500), domain.BookingActive).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Cancel(context.Background(), 500, "sick", canceledAt))
	})

	t.Run("booking no longer active", func(t *testing.T) {
		repo, mock, _, _ := newRepository(t)
		mock.ExpectExec(pattern).
			WithArgs(domain.BookingCanceled, "sick", canceledAt, int64(500), domain.BookingActive).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Cancel(context.Background(), 500, "sick", canceledAt), ErrInvalidStatus)
	})
}

func TestSetCheckInAndComplete_RequireActive(t *testing.T) {
	repo, mock, _, _ := newRepository(t)

	mock.ExpectExec(sqlPattern("UPDATE bookings SET check_in_time_encrypted = $1 WHERE id = $2 AND status = $3")).
		WithArgs(sqlmock.AnyArg(), int64(500), domain.BookingActive).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(sqlPattern("UPDATE bookings SET check_out_time_encrypted = $1, status = $2 WHERE id = $3 AND status = $4")).
		WithArgs(sqlmock.AnyArg(), domain.BookingCompleted, int64(500), domain.BookingActive).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.SetCheckIn(context.Background(), 500, "10:00:00"))
	assert.ErrorIs(t, repo.Complete(context.Background(), 500, "11:00:00"), ErrInvalidStatus)
}

func TestList_FiltersAndDecrypts(t *testing.T) {
	repo, mock, _, codec := newRepository(t)
	email, err := codec.Encrypt("ann@lab.example")
	require.NoError(t, err)
	checkIn, err := codec.Encrypt("09:55:00")
	require.NoError(t, err)

	mock.ExpectQuery(sqlPattern(
		"FROM bookings b",
		"JOIN locations l ON l.id = i.location_id",
		"WHERE b.student_id = $1 AND b.status = $2",
		"ORDER BY b.booked_at DESC, b.id DESC, s.date, s.start_time",
	)).
		WithArgs(int64(1), domain.BookingActive).
		WillReturnRows(sqlmock.NewRows([]string{
			"b.id", "b.status", "b.booked_at", "st.id", "name", "email", "it.name", "it.model", "it.access_level",
			"i.id", "s.id", "s.date", "s.start_time", "s.end_time", "check_in", "check_out", "building", "room",
		}).AddRow(
			int64(500), "Active", slotDate, int64(1), "Ann Lee", email, "Confocal", "LSM 900", "Level02",
			int64(110), int64(10), slotDate, "10:00:00", "11:00:00", checkIn, nil, "Bio", "101",
		))

	status := domain.BookingActive
	list, err := repo.List(context.Background(), domain.BookingsFilter{StudentID: ptr.Ptr[int64](1), Status: &status})
	require.NoError(t, err)
	require.Len(t, list, 1)

	row := list[0]
	assert.Equal(t, "ann@lab.example", row.StudentEmail)
	require.NotNil(t, row.CheckInTime)
	assert.Equal(t, types.TimeString("09:55:00"), *row.CheckInTime)
	assert.Nil(t, row.CheckOutTime)
	assert.Equal(t, "Bio - 101", row.Location())
}

func TestList_NoFilters(t *testing.T) {
	repo, mock, _, _ := newRepository(t)

	mock.ExpectQuery(`FROM bookings b .* ORDER BY b\.booked_at DESC, b\.id DESC, s\.date, s\.start_time$`).
		WillReturnRows(sqlmock.NewRows([]string{"b.id"}))

	list, err := repo.List(context.Background(), domain.BookingsFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}
