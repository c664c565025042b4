package usecases_port

import "context"

// SuggestListingsUseCase превращает вводимый текст в группы подсказок,
// не заливая бэкенд запросами и не обгоняя сам себя.
type SuggestListingsUseCase interface {
	// OnTextChanged вызывается на каждое изменение текста; запрос уходит
	// только после окна тишины.
	OnTextChanged(ctx context.Context, text string)

	// Dismiss закрывает подсказки и отменяет отложенный запрос.
	Dismiss()
}
