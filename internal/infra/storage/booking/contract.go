package booking

import (
	"github.com/m04kA/SMC-InstrumentReservation/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// FieldCodec шифрование полей, хранящихся в БД в зашифрованном виде
// Реализуется *fieldcodec.Codec
type FieldCodec interface {
	Encrypt(plain string) ([]byte, error)
	Decrypt(sealed []byte) (string, error)
	DecryptNullable(sealed []byte) (*string, error)
}
