package marketplace_api_client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"property-search-service/internal/contextkeys"
	"property-search-service/internal/contracts"
	"property-search-service/internal/core/domain"
	"property-search-service/internal/core/port"
)

// Client - HTTP-адаптер REST-бэкенда маркетплейса. Изолирует ядро от
// формы чужого API: снаружи доменные структуры, внутри DTO и query-строки.
type Client struct {
	baseURL           string
	httpClient        *http.Client
	validateResponses bool
}

func NewClient(baseURL string, validateResponses bool) *Client {
	return &Client{
		baseURL:           baseURL,
		httpClient:        &http.Client{},
		validateResponses: validateResponses,
	}
}

// doRequest - общий хелпер: прокидывает X-Trace-ID из контекста и
// стандартные заголовки.
func (c *Client) doRequest(ctx context.Context, method, requestURL, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.httpClient.Do(req)
}

// readSuccessBody проверяет статус и возвращает тело ответа. Тело
// неуспешного ответа попадает в текст ошибки.
func readSuccessBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("marketplace returned non-success status code %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func (c *Client) SearchListings(ctx context.Context, q domain.ListingSearchQuery) (*domain.ResultPage, error) {
	return c.searchListings(ctx, "/properties/all-properties", q)
}

func (c *Client) SearchMapListings(ctx context.Context, q domain.ListingSearchQuery) (*domain.ResultPage, error) {
	return c.searchListings(ctx, "/properties/all-properties-map", q)
}

func (c *Client) searchListings(ctx context.Context, path string, q domain.ListingSearchQuery) (*domain.ResultPage, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "MarketplaceApiClient",
		"path":      path,
	})

	requestURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, searchValues(q).Encode())
	logger.Debug("Sending request to marketplace", port.Fields{"url": requestURL})

	resp, err := c.doRequest(ctx, http.MethodGet, requestURL, "")
	if err != nil {
		logger.Error("Failed to perform request to marketplace", err, nil)
		return nil, err
	}
	body, err := readSuccessBody(resp)
	if err != nil {
		logger.Error("Received error response from marketplace", err, nil)
		return nil, err
	}

	if c.validateResponses {
		// Нарушение контракта - предупреждение, а не отказ: выдача
		// важнее строгости схемы.
		if err := contracts.ValidateResultPage(body); err != nil {
			logger.Warn("Result page violates the response contract", port.Fields{"error": err.Error()})
		}
	}

	var dto resultPageResponse
	if err := json.Unmarshal(body, &dto); err != nil {
		logger.Error("Failed to decode marketplace response", err, nil)
		return nil, err
	}

	page := &domain.ResultPage{
		Items: make([]domain.ListingSummary, len(dto.Data.Data)),
		Meta: domain.PageMeta{
			CurrentPage: dto.Data.Meta.CurrentPage,
			TotalPages:  dto.Data.Meta.TotalPages,
			TotalItems:  dto.Data.Meta.TotalItems,
			PerPage:     dto.Data.Meta.PerPage,
		},
	}
	for i, item := range dto.Data.Data {
		page.Items[i] = domain.ListingSummary{
			ID:            item.ID,
			ListingKey:    item.ListingKey,
			Title:         item.Title,
			OriginalPrice: item.OriginalPrice,
			Bedrooms:      item.Bedrooms,
			Bathrooms:     item.Bathrooms,
			AreaSqFt:      item.AreaSqFt,
			Images:        item.Images,
			Address:       item.Address,
			City:          item.City,
			County:        item.County,
			MLSStatus:     item.MLSStatus,
			Latitude:      item.Latitude,
			Longitude:     item.Longitude,
		}
	}

	logger.Debug("Marketplace response decoded", port.Fields{
		"items":        len(page.Items),
		"current_page": page.Meta.CurrentPage,
	})
	return page, nil
}

// searchValues строит query-параметры запроса выдачи. Пустые фильтры
// опускаются, а не передаются пустыми строками.
func searchValues(q domain.ListingSearchQuery) url.Values {
	v := url.Values{}
	v.Set("limit", fmt.Sprintf("%d", q.Limit))
	v.Set("page", fmt.Sprintf("%d", q.Page))
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	if q.MLSStatus != "" {
		v.Set("mlsStatus", q.MLSStatus)
	}
	if q.PropertyType != "" {
		v.Set("propertyType", q.PropertyType)
	}
	if q.PropertySubtype != "" {
		v.Set("propertySubType", q.PropertySubtype)
	}
	if q.County != "" {
		v.Set("county", q.County)
	}
	return v
}

func (c *Client) FetchSuggestions(ctx context.Context, text string) (*domain.SuggestionSet, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "MarketplaceApiClient",
		"method":    "FetchSuggestions",
	})

	// Путь с опечаткой - так он называется у бэкенда.
	requestURL := fmt.Sprintf("%s/properties/serach-suggestions?q=%s", c.baseURL, url.QueryEscape(text))

	resp, err := c.doRequest(ctx, http.MethodGet, requestURL, "")
	if err != nil {
		logger.Error("Failed to perform request to marketplace", err, nil)
		return nil, err
	}
	body, err := readSuccessBody(resp)
	if err != nil {
		logger.Error("Received error response from marketplace", err, nil)
		return nil, err
	}

	if c.validateResponses {
		if err := contracts.ValidateSuggestionSet(body); err != nil {
			logger.Warn("Suggestion payload violates the response contract", port.Fields{"error": err.Error()})
		}
	}

	var dto suggestionsResponse
	if err := json.Unmarshal(body, &dto); err != nil {
		logger.Error("Failed to decode marketplace response", err, nil)
		return nil, err
	}

	set := &domain.SuggestionSet{}
	for _, city := range dto.Data.City {
		set.Cities = append(set.Cities, domain.CitySuggestion{
			City:            city.City,
			StateOrProvince: city.StateOrProvince,
		})
	}
	for _, county := range dto.Data.County {
		set.Counties = append(set.Counties, domain.CountySuggestion{
			County:          county.County,
			StateOrProvince: county.StateOrProvince,
		})
	}
	for _, property := range dto.Data.Suggested {
		set.Properties = append(set.Properties, domain.PropertySuggestion{
			ListingKey: property.ListingKey,
			Title:      property.Title,
		})
	}
	return set, nil
}

func (c *Client) FetchCounties(ctx context.Context) ([]string, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "MarketplaceApiClient",
		"method":    "FetchCounties",
	})

	requestURL := c.baseURL + "/properties/all-counties"

	resp, err := c.doRequest(ctx, http.MethodGet, requestURL, "")
	if err != nil {
		logger.Error("Failed to perform request to marketplace", err, nil)
		return nil, err
	}
	body, err := readSuccessBody(resp)
	if err != nil {
		logger.Error("Received error response from marketplace", err, nil)
		return nil, err
	}

	var dto countiesResponse
	if err := json.Unmarshal(body, &dto); err != nil {
		logger.Error("Failed to decode marketplace response", err, nil)
		return nil, err
	}
	return dto.Data, nil
}

func (c *Client) AddFavorite(ctx context.Context, token, listingID string) error {
	return c.favoriteRequest(ctx, http.MethodPost, token, listingID)
}

func (c *Client) RemoveFavorite(ctx context.Context, token, listingID string) error {
	return c.favoriteRequest(ctx, http.MethodDelete, token, listingID)
}

func (c *Client) favoriteRequest(ctx context.Context, method, token, listingID string) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "MarketplaceApiClient",
		"method":     method,
		"listing_id": listingID,
	})

	requestURL := fmt.Sprintf("%s/users/favorite/%s", c.baseURL, url.PathEscape(listingID))

	resp, err := c.doRequest(ctx, method, requestURL, token)
	if err != nil {
		logger.Error("Failed to perform favorite request", err, nil)
		return err
	}
	body, err := readSuccessBody(resp)
	if err != nil {
		logger.Error("Favorite request rejected", err, nil)
		return err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && !env.Success {
		err := fmt.Errorf("marketplace rejected favorite change: %s", env.Message)
		logger.Error("Favorite request rejected", err, nil)
		return err
	}
	return nil
}
