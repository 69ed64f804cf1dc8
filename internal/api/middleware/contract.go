package middleware

// Logger интерфейс для логирования
type Logger interface {
	Error(format string, v ...interface{})
}
