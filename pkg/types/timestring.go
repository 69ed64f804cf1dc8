package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format")

const secondsPerDay = 24 * 60 * 60

// TimeString время суток в формате "HH:MM:SS"
// Пустая строка означает отсутствие значения
type TimeString string

// NewTimeString создает TimeString из time.Time (дата отбрасывается)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second()))
}

// NewTimeStringFromString парсит строку "HH:MM" или "HH:MM:SS"
func NewTimeStringFromString(s string) (TimeString, error) {
	seconds, err := parseSeconds(strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return fromSeconds(seconds), nil
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат времени
func (t TimeString) Validate() error {
	_, err := parseSeconds(string(t))
	return err
}

// String возвращает время в формате "HH:MM:SS"
func (t TimeString) String() string {
	return string(t)
}

// Seconds возвращает количество секунд с начала суток
func (t TimeString) Seconds() int {
	s, err := parseSeconds(string(t))
	if err != nil {
		return 0
	}
	return s
}

// AddMinutes прибавляет минуты; переход через полночь считается ошибкой
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	s, err := parseSeconds(string(t))
	if err != nil {
		return "", err
	}
	s += minutes * 60
	if s < 0 || s >= secondsPerDay {
		return "", fmt.Errorf("%w: %s %+d minutes is out of day range", ErrInvalidTimeString, t, minutes)
	}
	return fromSeconds(s), nil
}

// IsBefore возвращает true, если t раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Seconds() < other.Seconds()
}

// IsAfter возвращает true, если t позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Seconds() > other.Seconds()
}

// Sub возвращает разницу t - other
func (t TimeString) Sub(other TimeString) time.Duration {
	return time.Duration(t.Seconds()-other.Seconds()) * time.Second
}

// OnDate возвращает момент времени t в указанную дату (в локации даты)
func (t TimeString) OnDate(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, date.Location()).Add(time.Duration(t.Seconds()) * time.Second)
}

// Scan реализует sql.Scanner
// Поддерживает TIME из PostgreSQL ("15:04:05" или "15:04:05.999999") и time.Time
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

func (t *TimeString) scanString(s string) error {
	// Отбрасываем дробную часть секунд
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		s = s[:idx]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func parseSeconds(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, ErrInvalidTimeString
	}

	limits := []int{23, 59, 59}
	values := make([]int, 3)
	for i, part := range parts {
		if len(part) != 2 || !isDigit(part[0]) || !isDigit(part[1]) {
			return 0, ErrInvalidTimeString
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > limits[i] {
			return 0, ErrInvalidTimeString
		}
		values[i] = n
	}

	return values[0]*3600 + values[1]*60 + values[2], nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func fromSeconds(s int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60))
}
