package port

// Fields - структурированные данные для записи в лог.
type Fields map[string]interface{}

// LoggerPort абстрагирует ядро от конкретной реализации логгера.
type LoggerPort interface {
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, err error, fields Fields)
	Debug(msg string, fields Fields)

	// WithFields возвращает новый логгер с уже добавленными полями,
	// например trace_id или именем компонента.
	WithFields(fields Fields) LoggerPort
}
