// Package handlers содержит общие функции формирования HTTP ответов.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
)

// Максимальный размер тела запроса
const maxBodyBytes = 1 << 20

const (
	msgInternalError      = "internal server error"
	msgServiceUnavailable = "service temporarily unavailable, please retry"
)

// ErrEmptyBody возвращается DecodeJSON, если тело запроса пустое
var ErrEmptyBody = errors.New("request body is empty")

// ErrorResponse ответ с ошибкой для запросов на чтение
type ErrorResponse struct {
	Error string `json:"error"`
}

// FailureResponse ответ с ошибкой для изменяющих запросов
type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError отправляет {error} с указанным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondBadRequest отправляет 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondNotFound отправляет 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondInternalError отправляет 500 без деталей
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondServiceUnavailable отправляет 503
func RespondServiceUnavailable(w http.ResponseWriter) {
	RespondError(w, http.StatusServiceUnavailable, msgServiceUnavailable)
}

// RespondFailure отправляет {success:false, error} с указанным статусом
func RespondFailure(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, FailureResponse{Success: false, Error: message})
}

// RespondReadError отвечает на ошибку запроса на чтение по таксономии ошибок
func RespondReadError(w http.ResponseWriter, err error, badRequestMessage string) {
	switch StatusFor(err) {
	case http.StatusBadRequest:
		RespondBadRequest(w, badRequestMessage)
	case http.StatusServiceUnavailable:
		RespondServiceUnavailable(w)
	default:
		RespondInternalError(w)
	}
}

// RespondMutationError отвечает на ошибку изменяющего запроса.
// Для бизнес-ошибок используется message, для остальных - стандартный текст
func RespondMutationError(w http.ResponseWriter, err error, message string) {
	status := StatusFor(err)
	switch status {
	case http.StatusBadRequest:
		RespondFailure(w, status, message)
	case http.StatusServiceUnavailable:
		RespondFailure(w, status, msgServiceUnavailable)
	default:
		RespondFailure(w, status, msgInternalError)
	}
}

// StatusFor возвращает HTTP статус для ошибки:
// бизнес-ошибки - 400, недоступность хранилища - 503, остальное - 500
func StatusFor(err error) int {
	switch {
	case domain.IsBusinessError(err):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON декодирует тело запроса в v.
// Пустое тело возвращает ErrEmptyBody
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	defer r.Body.Close()

	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	return nil
}

// PathInt64 извлекает положительный int64 из переменной пути mux
func PathInt64(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// QueryInt64 извлекает опциональный положительный int64 из query параметра
// Отсутствующий или пустой параметр возвращает nil
func QueryInt64(r *http.Request, name string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return &value, nil
}

// QueryString извлекает опциональный строковый query параметр
func QueryString(r *http.Request, name string) *string {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	return &raw
}
