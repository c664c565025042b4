package usecases_port

import (
	"context"

	"property-search-service/internal/core/domain"
)

// FetchResultsUseCase запрашивает одну страницу выдачи, согласованную с
// текущим QueryState.
type FetchResultsUseCase interface {
	Execute(ctx context.Context, view domain.ViewMode, query domain.QueryState) (*domain.ResultPage, error)
}
