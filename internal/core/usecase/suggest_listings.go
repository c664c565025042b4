package usecase

import (
	"context"
	"strings"
	"sync"

	"property-search-service/internal/contextkeys"
	"property-search-service/internal/core/port"
)

// SuggestListingsUseCase - дебаунс и защита от гонок для автодополнения.
// Каждому выстрелившему запросу присваивается монотонный номер; применить
// результат может только последний выданный запрос, даже если сеть вернёт
// ответы в обратном порядке.
type SuggestListingsUseCase struct {
	api       port.MarketplaceAPIPort
	debouncer port.DebouncerPort
	sink      port.SuggestionSinkPort

	mu      sync.Mutex
	pending port.CancelFunc
	seq     uint64
}

func NewSuggestListingsUseCase(
	api port.MarketplaceAPIPort,
	debouncer port.DebouncerPort,
	sink port.SuggestionSinkPort,
) *SuggestListingsUseCase {
	return &SuggestListingsUseCase{api: api, debouncer: debouncer, sink: sink}
}

// OnTextChanged перезапускает окно дебаунса с каждого нажатия клавиши.
// Пустой или пробельный текст немедленно очищает подсказки, запрос не
// выполняется.
func (uc *SuggestListingsUseCase) OnTextChanged(ctx context.Context, text string) {
	uc.mu.Lock()
	uc.cancelPendingLocked()

	if strings.TrimSpace(text) == "" {
		// Инвалидируем и запросы, которые уже в полёте.
		uc.seq++
		uc.mu.Unlock()
		uc.sink.ClearSuggestions()
		return
	}

	uc.pending = uc.debouncer.Schedule(func() {
		uc.fire(ctx, text)
	})
	uc.mu.Unlock()
}

// Dismiss закрывает подсказки: клик мимо поля, Enter или выбор пункта.
func (uc *SuggestListingsUseCase) Dismiss() {
	uc.mu.Lock()
	uc.cancelPendingLocked()
	uc.seq++
	uc.mu.Unlock()
	uc.sink.ClearSuggestions()
}

func (uc *SuggestListingsUseCase) cancelPendingLocked() {
	if uc.pending != nil {
		uc.pending()
		uc.pending = nil
	}
}

func (uc *SuggestListingsUseCase) fire(ctx context.Context, text string) {
	uc.mu.Lock()
	uc.seq++
	issued := uc.seq
	uc.mu.Unlock()

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "SuggestListings",
		"seq":      issued,
	})
	logger.Debug("Suggestion request issued", port.Fields{"text": text})

	set, err := uc.api.FetchSuggestions(ctx, text)

	uc.mu.Lock()
	stale := issued != uc.seq
	uc.mu.Unlock()
	if stale {
		// Последнее нажатие побеждает: вытесненный ответ выбрасывается,
		// каким бы поздним он ни пришёл.
		logger.Debug("Suggestion response superseded, discarding", nil)
		return
	}

	if err != nil {
		// Сбой подсказок никогда не блокирует основной поиск - молча
		// деградируем до пустого набора.
		logger.Warn("Suggestion request failed, clearing", port.Fields{"error": err.Error()})
		uc.sink.ClearSuggestions()
		return
	}

	if set.IsEmpty() {
		// Пустой набор - это не подсказки, а их отсутствие: панель
		// закрывается, а не показывается пустой.
		logger.Debug("Suggestion response is empty, clearing", nil)
		uc.sink.ClearSuggestions()
		return
	}

	logger.Debug("Suggestion response applied", port.Fields{
		"cities":     len(set.Cities),
		"counties":   len(set.Counties),
		"properties": len(set.Properties),
	})
	uc.sink.RenderSuggestions(*set)
}
