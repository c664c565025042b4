package port

import (
	"context"

	"property-search-service/internal/core/domain"
)

// MarketplaceAPIPort - контракт REST-бэкенда маркетплейса. Сам бэкенд
// вне зоны ответственности этого сервиса, ядро знает только интерфейс.
type MarketplaceAPIPort interface {
	// SearchListings возвращает страницу выдачи для сеточного вида.
	SearchListings(ctx context.Context, q domain.ListingSearchQuery) (*domain.ResultPage, error)

	// SearchMapListings возвращает страницу выдачи для вида карты;
	// карточки содержат координаты, когда они известны бэкенду.
	SearchMapListings(ctx context.Context, q domain.ListingSearchQuery) (*domain.ResultPage, error)

	// FetchSuggestions возвращает группы автодополнения для текста запроса.
	FetchSuggestions(ctx context.Context, text string) (*domain.SuggestionSet, error)

	// FetchCounties возвращает список округов, по которым есть объявления.
	FetchCounties(ctx context.Context) ([]string, error)

	AddFavorite(ctx context.Context, token, listingID string) error
	RemoveFavorite(ctx context.Context, token, listingID string) error
}
