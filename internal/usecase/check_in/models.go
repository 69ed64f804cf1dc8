package check_in

import "github.com/m04kA/SMC-InstrumentReservation/pkg/types"

// Request модель запроса на регистрацию прихода
type Request struct {
	BookingID   int64            // ID бронирования
	CheckInTime types.TimeString // Фактическое время прихода
}

// Response модель ответа на регистрацию прихода
type Response struct {
	BookingID     int64            // ID бронирования
	ScheduleID    int64            // Слот, к которому отнесен приход
	CheckInTime   types.TimeString // Сохраненное время прихода
	PenaltyIssued bool             // Начислен ли штраф за опоздание
}
