package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: fmt.Errorf("x: %w", domain.ErrValidation), want: http.StatusBadRequest},
		{name: "slot", err: domain.ErrSlotUnavailable, want: http.StatusBadRequest},
		{name: "quota", err: domain.ErrQuota, want: http.StatusBadRequest},
		{name: "state", err: domain.ErrInvalidState, want: http.StatusBadRequest},
		{name: "not found", err: domain.ErrNotFound, want: http.StatusBadRequest},
		{name: "unavailable", err: fmt.Errorf("x: %w", domain.ErrServiceUnavailable), want: http.StatusServiceUnavailable},
		{name: "internal", err: errors.New("boom"), want: http.StatusInternalServerError},
		{name: "raw deadline", err: context.DeadlineExceeded, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestRespondMutationError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondMutationError(rec, fmt.Errorf("x: %w", domain.ErrInvalidState), "booking is not active")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"booking is not active"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	RespondMutationError(rec, errors.New("pq: relation does not exist"), "ignored")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "relation")
}

func TestRespondReadError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondReadError(rec, fmt.Errorf("x: %w", domain.ErrServiceUnavailable), "bad filter")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"service temporarily unavailable, please retry"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	RespondReadError(rec, domain.ErrValidation, "bad filter")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"bad filter"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Reason string `json:"reason"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"reason":"sick"}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "sick", dst.Reason)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.ErrorIs(t, DecodeJSON(req, &dst), ErrEmptyBody)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"reason":`))
	err := DecodeJSON(req, &dst)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyBody)
}

func TestPathInt64(t *testing.T) {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/", nil), map[string]string{"bookingId": "15"})
	id, err := PathInt64(req, "bookingId")
	require.NoError(t, err)
	assert.Equal(t, int64(15), id)

	for _, raw := range []string{"abc", "0", "-2", ""} {
		req = mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/", nil), map[string]string{"bookingId": raw})
		_, err = PathInt64(req, "bookingId")
		assert.Error(t, err, raw)
	}
}

func TestQueryInt64(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?studentId=4&empty=", nil)

	got, err := QueryInt64(req, "studentId")
	require.NoError(t, err)
	assert.Equal(t, int64(4), *got)

	got, err = QueryInt64(req, "empty")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = QueryInt64(httptest.NewRequest(http.MethodGet, "/?studentId=x", nil), "studentId")
	assert.Error(t, err)
}
