package domain

// PageMeta - пагинационные метаданные ответа бэкенда.
type PageMeta struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int
	PerPage     int
}

// HasMorePages сообщает, остались ли страницы за текущей.
func (m PageMeta) HasMorePages() bool {
	return m.CurrentPage < m.TotalPages
}

// ListingSummary - карточка объявления в выдаче. Координаты опциональны:
// не у всех объектов есть геокод, такие объекты не попадают на карту.
type ListingSummary struct {
	ID            string
	ListingKey    string
	Title         string
	OriginalPrice float64
	Bedrooms      int
	Bathrooms     int
	AreaSqFt      float64
	Images        []string
	Address       string
	City          string
	County        string
	MLSStatus     string
	Latitude      *float64
	Longitude     *float64
}

// HasCoordinates - есть ли у объявления обе координаты.
func (l ListingSummary) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// ResultPage - одна страница выдачи вместе с метаданными.
type ResultPage struct {
	Items []ListingSummary
	Meta  PageMeta
}

// ListingSearchQuery - параметры запроса к бэкенду, уже отображённые из
// QueryState. Пустые строки означают "параметр не передавать".
type ListingSearchQuery struct {
	Search          string
	SortBy          string
	Order           string
	MLSStatus       string
	PropertyType    string
	PropertySubtype string
	County          string
	Page            int
	Limit           int
}
