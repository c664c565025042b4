package usecase

import (
	"context"
	"strings"

	"property-search-service/internal/contextkeys"
	"property-search-service/internal/core/domain"
	"property-search-service/internal/core/port"
)

type FetchResultsUseCase struct {
	api port.MarketplaceAPIPort
}

func NewFetchResultsUseCase(api port.MarketplaceAPIPort) *FetchResultsUseCase {
	return &FetchResultsUseCase{api: api}
}

// Execute отображает QueryState в параметры бэкенда и забирает одну
// страницу выдачи. Пустые фильтры в запрос не попадают вовсе - их
// опускает клиентский адаптер.
func (uc *FetchResultsUseCase) Execute(ctx context.Context, view domain.ViewMode, query domain.QueryState) (*domain.ResultPage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "FetchResults",
		"view":     view,
		"page":     query.Page,
		"limit":    query.PageSize,
	})

	ucLogger.Info("Use case started", nil)

	req := domain.ListingSearchQuery{
		Search:          strings.TrimSpace(query.SearchText),
		SortBy:          string(query.SortField),
		Order:           string(query.SortOrder),
		MLSStatus:       query.MLSStatusFilter,
		PropertyType:    query.PropertyType,
		PropertySubtype: query.PropertySubtype,
		Page:            query.Page,
		Limit:           query.PageSize,
	}

	var (
		page *domain.ResultPage
		err  error
	)
	if view == domain.ViewModeMap {
		// Округ имеет смысл только на карте и в URL не сериализуется.
		req.County = query.County
		page, err = uc.api.SearchMapListings(ctx, req)
	} else {
		page, err = uc.api.SearchListings(ctx, req)
	}
	if err != nil {
		ucLogger.Error("Marketplace API returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"items_on_page": len(page.Items),
		"total_items":   page.Meta.TotalItems,
		"current_page":  page.Meta.CurrentPage,
	})
	return page, nil
}
