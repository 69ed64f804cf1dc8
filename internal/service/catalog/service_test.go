package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
	"github.com/m04kA/SMC-InstrumentReservation/internal/service/catalog/models"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/ptr"
)

type fakeRepo struct {
	stats      *domain.DashboardStats
	types      []*domain.InstrumentType
	slots      []*domain.AvailableSlot
	err        error
	typeCalls  int
	lastFilter domain.SlotsFilter
}

func (f *fakeRepo) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	return f.stats, f.err
}

func (f *fakeRepo) ListInstrumentTypes(ctx context.Context) ([]*domain.InstrumentType, error) {
	f.typeCalls++
	return f.types, f.err
}

func (f *fakeRepo) ListAvailableSlots(ctx context.Context, filter domain.SlotsFilter) ([]*domain.AvailableSlot, error) {
	f.lastFilter = filter
	return f.slots, f.err
}

type fakeCache struct {
	stored []*domain.InstrumentType
	hit    bool
}

func (c *fakeCache) GetInstrumentTypes(ctx context.Context) ([]*domain.InstrumentType, bool) {
	return c.stored, c.hit
}

func (c *fakeCache) SetInstrumentTypes(ctx context.Context, types []*domain.InstrumentType) {
	c.stored = types
	c.hit = true
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestService_GetDashboardStats(t *testing.T) {
	repo := &fakeRepo{stats: &domain.DashboardStats{TotalStudents: 12, PenalizedStudents: 2}}
	svc := NewService(repo, nil, time.UTC, nopLogger{})

	got, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), got.TotalStudents)
	assert.Equal(t, int64(2), got.PenalizedStudents)
}

func TestService_GetDashboardStats_Errors(t *testing.T) {
	svc := NewService(&fakeRepo{err: context.DeadlineExceeded}, nil, time.UTC, nopLogger{})
	_, err := svc.GetDashboardStats(context.Background())
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)

	svc = NewService(&fakeRepo{err: errors.New("syntax error")}, nil, time.UTC, nopLogger{})
	_, err = svc.GetDashboardStats(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, domain.ErrServiceUnavailable)
}

func TestService_ListInstrumentTypes_ReadThroughCache(t *testing.T) {
	repo := &fakeRepo{types: []*domain.InstrumentType{
		{ID: 1, Name: "Microscope", Model: "M-1", AccessLevel: "Level 1"},
		{ID: 2, Name: "Spectrometer", Model: "S-9", AccessLevel: "Level 2"},
	}}
	cache := &fakeCache{}
	svc := NewService(repo, cache, time.UTC, nopLogger{})

	first, err := svc.ListInstrumentTypes(context.Background())
	require.NoError(t, err)
	second, err := svc.ListInstrumentTypes(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.typeCalls)
	assert.Equal(t, first, second)
	require.Len(t, first, 2)
	assert.Equal(t, "Level 1", first[0].AccessLevel)
}

func TestService_ListInstrumentTypes_WithoutCache(t *testing.T) {
	repo := &fakeRepo{types: []*domain.InstrumentType{}}
	svc := NewService(repo, nil, time.UTC, nopLogger{})

	got, err := svc.ListInstrumentTypes(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = svc.ListInstrumentTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.typeCalls)
}

func TestService_ListAvailableSlots_Filter(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Bangkok")
	require.NoError(t, err)

	repo := &fakeRepo{slots: []*domain.AvailableSlot{{
		ScheduleID:     5,
		Date:           time.Date(2026, 10, 16, 0, 0, 0, 0, loc),
		StartTime:      "09:00:00",
		EndTime:        "10:00:00",
		Status:         domain.ScheduleAvailable,
		InstrumentName: "Microscope",
		Building:       "Science",
		RoomNo:         "101",
	}}}
	svc := NewService(repo, nil, loc, nopLogger{})

	got, err := svc.ListAvailableSlots(context.Background(), &models.GetAvailableSlotsRequest{
		InstrumentTypeID: ptr.Ptr[int64](3),
		Date:             ptr.Ptr("2026-10-16"),
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter.Date)
	assert.Equal(t, "2026-10-16", repo.lastFilter.Date.Format(domain.DateFormat))
	assert.Equal(t, loc, repo.lastFilter.Date.Location())
	assert.Equal(t, int64(3), *repo.lastFilter.InstrumentTypeID)

	require.Len(t, got, 1)
	assert.Equal(t, "2026-10-16", got[0].Date)
	assert.Equal(t, "Science - 101", got[0].Location)
}

func TestService_ListAvailableSlots_InvalidFilter(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil, time.UTC, nopLogger{})

	_, err := svc.ListAvailableSlots(context.Background(), &models.GetAvailableSlotsRequest{Date: ptr.Ptr("16/10/2026")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.ListAvailableSlots(context.Background(), &models.GetAvailableSlotsRequest{InstrumentTypeID: ptr.Ptr[int64](0)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ListAvailableSlots_NoFilter(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil, time.UTC, nopLogger{})

	got, err := svc.ListAvailableSlots(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Nil(t, repo.lastFilter.Date)
	assert.Nil(t, repo.lastFilter.InstrumentTypeID)
}
