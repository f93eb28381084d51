package textgen

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// FallbackCounter счётчик ответов, заменённых шаблоном
type FallbackCounter interface {
	Inc()
}
