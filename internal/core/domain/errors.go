package domain

import "errors"

var (
	// ErrNotAuthenticated - токен сессии отсутствует или истёк; операции
	// с избранным вместо вызова API уводят на страницу входа.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrLoadMoreInFlight - догрузка отклонена: другой запрос выдачи
	// (replace или предыдущий append) ещё в полёте.
	ErrLoadMoreInFlight = errors.New("another listings fetch is in flight")

	// ErrNoMorePages - достигнута последняя страница выдачи.
	ErrNoMorePages = errors.New("no more pages")
)
