package usecase

import (
	"context"
	"errors"
	"testing"

	"property-search-service/internal/core/domain"
)

type stubSession struct {
	token string
	err   error
}

func (s *stubSession) Token(ctx context.Context) (string, error) {
	return s.token, s.err
}

func TestToggleFavoriteWithoutTokenSkipsBackend(t *testing.T) {
	called := false
	api := &stubMarketplaceAPI{
		addFavorite: func(ctx context.Context, token, listingID string) error {
			called = true
			return nil
		},
	}
	uc := NewToggleFavoriteUseCase(api, &stubSession{err: domain.ErrNotAuthenticated})

	err := uc.Execute(context.Background(), "listing-1", true)
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if called {
		t.Fatal("backend must not be called without a token")
	}
}

func TestToggleFavoritePassesTokenAndDirection(t *testing.T) {
	var (
		addToken, addID string
		removeID        string
	)
	api := &stubMarketplaceAPI{
		addFavorite: func(ctx context.Context, token, listingID string) error {
			addToken, addID = token, listingID
			return nil
		},
		removeFavorite: func(ctx context.Context, token, listingID string) error {
			removeID = listingID
			return nil
		},
	}
	uc := NewToggleFavoriteUseCase(api, &stubSession{token: "jwt-token"})

	if err := uc.Execute(context.Background(), "listing-1", true); err != nil {
		t.Fatalf("add favorite: %v", err)
	}
	if addToken != "jwt-token" || addID != "listing-1" {
		t.Fatalf("unexpected add call: token=%q id=%q", addToken, addID)
	}

	if err := uc.Execute(context.Background(), "listing-2", false); err != nil {
		t.Fatalf("remove favorite: %v", err)
	}
	if removeID != "listing-2" {
		t.Fatalf("unexpected remove call: id=%q", removeID)
	}
}

func TestToggleFavoritePropagatesBackendError(t *testing.T) {
	backendErr := errors.New("backend down")
	api := &stubMarketplaceAPI{
		addFavorite: func(ctx context.Context, token, listingID string) error {
			return backendErr
		},
	}
	uc := NewToggleFavoriteUseCase(api, &stubSession{token: "jwt-token"})

	if err := uc.Execute(context.Background(), "listing-1", true); !errors.Is(err, backendErr) {
		t.Fatalf("expected backend error, got %v", err)
	}
}
