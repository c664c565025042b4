package usecases_port

import "context"

// ToggleFavoriteUseCase добавляет или убирает объявление из избранного
// на бэкенде. Возвращает domain.ErrNotAuthenticated, если токена нет.
type ToggleFavoriteUseCase interface {
	Execute(ctx context.Context, listingID string, favorite bool) error
}
