package penalty_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
	"github.com/m04kA/SMC-InstrumentReservation/internal/usecase/memstore"
	"github.com/m04kA/SMC-InstrumentReservation/internal/usecase/penalty"
)

var issuedAt = time.Date(2026, 5, 5, 10, 0, 0, 0, time.UTC)

func TestIssuer_NoQuotaPlanStillRecordsPenalty(t *testing.T) {
	store := memstore.New()
	issuer := penalty.NewIssuer(store, memstore.Logger{})

	err := issuer.Issue(context.Background(), penalty.Request{
		StudentID: 7,
		BookingID: 1,
		Reason:    domain.PenaltyLateCheckIn,
		Policy:    &domain.PenaltyPolicy{PenaltyPoints: 2, PenalizedThreshold: 3},
		IssuedAt:  issuedAt,
	})
	require.NoError(t, err)

	penalties := store.Penalties()
	require.Len(t, penalties, 1)
	assert.Equal(t, 2, penalties[0].Points)
	assert.Equal(t, int64(7), penalties[0].StudentID)
}

func TestIssuer_ExpiredPlanIsIgnored(t *testing.T) {
	store := memstore.New()
	store.AddQuotaPlan(domain.QuotaPlan{
		ID: 1, StudentID: 7, Status: domain.QuotaActive,
		ExpirationDate: issuedAt.AddDate(0, 0, -1),
	})
	issuer := penalty.NewIssuer(store, memstore.Logger{})

	err := issuer.Issue(context.Background(), penalty.Request{
		StudentID: 7, BookingID: 1, Reason: domain.PenaltyLateCancellation,
		Policy: &domain.PenaltyPolicy{PenaltyPoints: 1, PenalizedThreshold: 1}, IssuedAt: issuedAt,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, store.QuotaPlan(1).PenaltyPoints)
}

func TestIssuer_StoreError(t *testing.T) {
	store := memstore.New()
	store.FailOn("CreatePenalty", errors.New("boom"))
	issuer := penalty.NewIssuer(store, memstore.Logger{})

	err := issuer.Issue(context.Background(), penalty.Request{
		StudentID: 7, BookingID: 1, Reason: domain.PenaltyLateCheckOut,
		Policy: &domain.PenaltyPolicy{PenaltyPoints: 1, PenalizedThreshold: 3}, IssuedAt: issuedAt,
	})
	assert.EqualError(t, err, "create penalty: boom")
}
