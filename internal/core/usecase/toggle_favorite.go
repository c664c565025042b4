package usecase

import (
	"context"
	"fmt"

	"property-search-service/internal/contextkeys"
	"property-search-service/internal/core/domain"
	"property-search-service/internal/core/port"
)

type ToggleFavoriteUseCase struct {
	api     port.MarketplaceAPIPort
	session port.SessionPort
}

func NewToggleFavoriteUseCase(api port.MarketplaceAPIPort, session port.SessionPort) *ToggleFavoriteUseCase {
	return &ToggleFavoriteUseCase{api: api, session: session}
}

// Execute выполняет серверную часть переключения избранного. Токен
// перечитывается на каждый вызов; без токена запрос не уходит.
func (uc *ToggleFavoriteUseCase) Execute(ctx context.Context, listingID string, favorite bool) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "ToggleFavorite",
		"listing_id": listingID,
		"favorite":   favorite,
	})

	token, err := uc.session.Token(ctx)
	if err != nil {
		ucLogger.Warn("No valid session token, favorite call skipped", nil)
		return fmt.Errorf("toggle favorite: %w", domain.ErrNotAuthenticated)
	}

	if favorite {
		err = uc.api.AddFavorite(ctx, token, listingID)
	} else {
		err = uc.api.RemoveFavorite(ctx, token, listingID)
	}
	if err != nil {
		ucLogger.Error("Favorite call failed", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
