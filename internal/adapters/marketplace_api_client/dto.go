package marketplace_api_client

// Envelope - общий конверт ответов бэкенда.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type resultPageResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Meta pageMetaResponse  `json:"meta"`
		Data []listingResponse `json:"data"`
	} `json:"data"`
}

type pageMetaResponse struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
	PerPage     int `json:"perPage"`
}

type listingResponse struct {
	ID            string   `json:"id"`
	ListingKey    string   `json:"listingKey"`
	Title         string   `json:"title"`
	OriginalPrice float64  `json:"originalPrice"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	AreaSqFt      float64  `json:"areaSqFt"`
	Images        []string `json:"images"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	County        string   `json:"county"`
	MLSStatus     string   `json:"mlsStatus"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
}

type suggestionsResponse struct {
	Success bool `json:"success"`
	Data    struct {
		City      []citySuggestionResponse     `json:"city"`
		County    []countySuggestionResponse   `json:"county"`
		Suggested []propertySuggestionResponse `json:"suggestedProperties"`
	} `json:"data"`
}

type citySuggestionResponse struct {
	City            string `json:"city"`
	StateOrProvince string `json:"stateOrProvince"`
}

type countySuggestionResponse struct {
	County          string `json:"county"`
	StateOrProvince string `json:"stateOrProvince"`
}

type propertySuggestionResponse struct {
	ListingKey string `json:"listingKey"`
	Title      string `json:"title"`
}

type countiesResponse struct {
	Success bool     `json:"success"`
	Data    []string `json:"data"`
}
