package port

// CancelFunc отменяет запланированную задачу. Повторный вызов безопасен.
type CancelFunc func()

// DebouncerPort - явная абстракция отменяемой отложенной задачи.
// Каждый Schedule планирует fn через фиксированное окно задержки;
// отмена предыдущей задачи - обязанность вызывающего.
type DebouncerPort interface {
	Schedule(fn func()) CancelFunc
}
