package usecases_port

import (
	"context"

	"property-search-service/internal/core/domain"
)

// LoadCountyCirclesUseCase собирает статические кластер-маркеры округов
// для карты в состоянии без ограничений поиска.
type LoadCountyCirclesUseCase interface {
	Execute(ctx context.Context) ([]domain.CountyCircle, error)
}
