package student

import "errors"

var (
	// ErrQuotaPlanNotFound возвращается, когда у студента нет действующего плана квоты
	ErrQuotaPlanNotFound = errors.New("student.repository: quota plan not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("student.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("student.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("student.repository: failed to scan row")

	// ErrFieldCodec возвращается при ошибке шифрования/расшифровки поля
	ErrFieldCodec = errors.New("student.repository: field codec error")
)
