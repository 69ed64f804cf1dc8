// Package memstore in-memory реализация репозиториев и менеджера транзакций
// для тестов use case. Транзакции выполняются последовательно (как при
// блокировке строк), при ошибке состояние откатывается к снимку.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
	bookingRepo "github.com/m04kA/SMC-InstrumentReservation/internal/infra/storage/booking"
	studentRepo "github.com/m04kA/SMC-InstrumentReservation/internal/infra/storage/student"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/types"
)

type state struct {
	bookings  map[int64]domain.Booking
	lines     []domain.BookingLine
	schedules map[int64]domain.Schedule
	plans     map[int64]domain.QuotaPlan
	penalties []domain.Penalty
	nextID    int64
}

func (s *state) clone() *state {
	c := &state{
		bookings:  make(map[int64]domain.Booking, len(s.bookings)),
		lines:     append([]domain.BookingLine(nil), s.lines...),
		schedules: make(map[int64]domain.Schedule, len(s.schedules)),
		plans:     make(map[int64]domain.QuotaPlan, len(s.plans)),
		penalties: append([]domain.Penalty(nil), s.penalties...),
		nextID:    s.nextID,
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	for k, v := range s.schedules {
		c.schedules[k] = v
	}
	for k, v := range s.plans {
		c.plans[k] = v
	}
	return c
}

// Store in-memory хранилище
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	st   *state

	// Ошибки, которые вернут методы с указанным именем
	failures map[string]error
}

// New создает пустое хранилище
func New() *Store {
	return &Store{
		st: &state{
			bookings:  map[int64]domain.Booking{},
			schedules: map[int64]domain.Schedule{},
			plans:     map[int64]domain.QuotaPlan{},
			nextID:    1000,
		},
		failures: map[string]error{},
	}
}

// FailOn заставляет метод method возвращать err
func (s *Store) FailOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = err
}

func (s *Store) fail(method string) error {
	return s.failures[method]
}

// AddSchedule добавляет слот
func (s *Store) AddSchedule(sc domain.Schedule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.schedules[sc.ID] = sc
}

// AddQuotaPlan добавляет план квоты
func (s *Store) AddQuotaPlan(p domain.QuotaPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.plans[p.ID] = p
}

// AddBooking добавляет бронирование со строками на указанные слоты
func (s *Store) AddBooking(b domain.Booking, scheduleIDs ...int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.bookings[b.ID] = b
	for _, id := range scheduleIDs {
		s.st.nextID++
		s.st.lines = append(s.st.lines, domain.BookingLine{ID: s.st.nextID, BookingID: b.ID, ScheduleID: id})
	}
}

// Schedule возвращает слот по ID
func (s *Store) Schedule(id int64) domain.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.schedules[id]
}

// Booking возвращает бронирование по ID
func (s *Store) Booking(id int64) (domain.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.st.bookings[id]
	return b, ok
}

// Bookings возвращает количество бронирований
func (s *Store) Bookings() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.bookings)
}

// Lines возвращает строки бронирования
func (s *Store) Lines(bookingID int64) []domain.BookingLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.BookingLine
	for _, l := range s.st.lines {
		if l.BookingID == bookingID {
			out = append(out, l)
		}
	}
	return out
}

// QuotaPlan возвращает план квоты по ID
func (s *Store) QuotaPlan(id int64) domain.QuotaPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.plans[id]
}

// Penalties возвращает записанные штрафы
func (s *Store) Penalties() []domain.Penalty {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Penalty(nil), s.st.penalties...)
}

// Do выполняет fn как транзакцию: последовательно, с откатом при ошибке или панике
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.st.clone()
	s.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			s.restore(snapshot)
			panic(p)
		}
		if err != nil {
			s.restore(snapshot)
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}

	return fn(ctx)
}

func (s *Store) restore(snapshot *state) {
	s.mu.Lock()
	s.st = snapshot
	s.mu.Unlock()
}

// Booking repository

func (s *Store) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("Create"); err != nil {
		return nil, err
	}
	s.st.nextID++
	b.ID = s.st.nextID
	b.BookedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(b.ID) * time.Second)
	s.st.bookings[b.ID] = *b
	return b, nil
}

func (s *Store) CreateLines(ctx context.Context, bookingID int64, scheduleIDs []int64) ([]*domain.BookingLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateLines"); err != nil {
		return nil, err
	}
	out := make([]*domain.BookingLine, 0, len(scheduleIDs))
	for _, id := range scheduleIDs {
		s.st.nextID++
		line := domain.BookingLine{ID: s.st.nextID, BookingID: bookingID, ScheduleID: id}
		s.st.lines = append(s.st.lines, line)
		out = append(out, &line)
	}
	return out, nil
}

func (s *Store) LockSchedules(ctx context.Context, ids []int64) ([]*domain.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("LockSchedules"); err != nil {
		return nil, err
	}
	out := make([]*domain.Schedule, 0, len(ids))
	for _, id := range ids {
		if sc, ok := s.st.schedules[id]; ok {
			out = append(out, &sc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ReserveSchedules(ctx context.Context, ids []int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ReserveSchedules"); err != nil {
		return 0, err
	}
	var n int64
	for _, id := range ids {
		sc, ok := s.st.schedules[id]
		if ok && sc.Status == domain.ScheduleAvailable {
			sc.Status = domain.ScheduleBooked
			s.st.schedules[id] = sc
			n++
		}
	}
	return n, nil
}

func (s *Store) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetByIDForUpdate"); err != nil {
		return nil, err
	}
	b, ok := s.st.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (s *Store) GetSchedulesByBooking(ctx context.Context, bookingID int64) ([]*domain.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetSchedulesByBooking"); err != nil {
		return nil, err
	}
	var out []*domain.Schedule
	for _, l := range s.st.lines {
		if l.BookingID != bookingID {
			continue
		}
		if sc, ok := s.st.schedules[l.ScheduleID]; ok {
			out = append(out, &sc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime.IsBefore(out[j].StartTime)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) Cancel(ctx context.Context, id int64, reason string, canceledAt time.Time) error {
	return s.updateActive("Cancel", id, func(b *domain.Booking) {
		b.Status = domain.BookingCanceled
		b.CancellationReason = &reason
		b.CanceledAt = &canceledAt
	})
}

func (s *Store) SetCheckIn(ctx context.Context, id int64, checkIn types.TimeString) error {
	return s.updateActive("SetCheckIn", id, func(b *domain.Booking) {
		b.CheckInTime = &checkIn
	})
}

func (s *Store) Complete(ctx context.Context, id int64, checkOut types.TimeString) error {
	return s.updateActive("Complete", id, func(b *domain.Booking) {
		b.CheckOutTime = &checkOut
		b.Status = domain.BookingCompleted
	})
}

func (s *Store) updateActive(method string, id int64, apply func(b *domain.Booking)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(method); err != nil {
		return err
	}
	b, ok := s.st.bookings[id]
	if !ok || b.Status != domain.BookingActive {
		return bookingRepo.ErrInvalidStatus
	}
	apply(&b)
	s.st.bookings[id] = b
	return nil
}

func (s *Store) UpdateSchedulesStatus(ctx context.Context, ids []int64, status domain.ScheduleStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpdateSchedulesStatus"); err != nil {
		return err
	}
	for _, id := range ids {
		if sc, ok := s.st.schedules[id]; ok {
			sc.Status = status
			s.st.schedules[id] = sc
		}
	}
	return nil
}

// Student repository

func (s *Store) GetCurrentQuotaPlan(ctx context.Context, studentID int64, today time.Time) (*domain.QuotaPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetCurrentQuotaPlan"); err != nil {
		return nil, err
	}
	y, m, d := today.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	var best *domain.QuotaPlan
	for _, p := range s.st.plans {
		if p.StudentID != studentID || p.Status == domain.QuotaExpired || p.ExpirationDate.Before(day) {
			continue
		}
		if best == nil || p.ExpirationDate.After(best.ExpirationDate) {
			cp := p
			best = &cp
		}
	}
	if best == nil {
		return nil, studentRepo.ErrQuotaPlanNotFound
	}
	return best, nil
}

func (s *Store) UpdateQuotaPlanPenalty(ctx context.Context, plan *domain.QuotaPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpdateQuotaPlanPenalty"); err != nil {
		return err
	}
	if _, ok := s.st.plans[plan.ID]; !ok {
		return studentRepo.ErrQuotaPlanNotFound
	}
	s.st.plans[plan.ID] = *plan
	return nil
}

func (s *Store) CreatePenalty(ctx context.Context, p *domain.Penalty) (*domain.Penalty, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreatePenalty"); err != nil {
		return nil, err
	}
	s.st.nextID++
	p.ID = s.st.nextID
	s.st.penalties = append(s.st.penalties, *p)
	return p, nil
}

// StaticPolicy провайдер политики с фиксированным значением
type StaticPolicy struct {
	Policy domain.PenaltyPolicy
}

func (p StaticPolicy) GetEffective(ctx context.Context, instrumentTypeID *int64) (*domain.PenaltyPolicy, error) {
	policy := p.Policy
	return &policy, nil
}

// Clock фиксированное время
type Clock struct {
	T time.Time
}

func (c Clock) Now() time.Time { return c.T }

// Logger логгер, который ничего не пишет
type Logger struct{}

func (Logger) Debug(format string, v ...interface{}) {}
func (Logger) Info(format string, v ...interface{})  {}
func (Logger) Warn(format string, v ...interface{})  {}
func (Logger) Error(format string, v ...interface{}) {}
