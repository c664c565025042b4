package domain

import (
	"net/url"
	"strconv"
	"strings"
)

type SortField string

const (
	SortFieldCreatedAt     SortField = "createdAt"
	SortFieldOriginalPrice SortField = "originalPrice"
)

type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// MLSStatusActive - единственное поддерживаемое значение фильтра по статусу.
const MLSStatusActive = "Active"

// QueryState - единственный источник правды для параметров поиска,
// сортировки, фильтров и пагинации. Изменяется только через Apply.
type QueryState struct {
	SearchText      string
	SortField       SortField
	SortOrder       SortOrder
	Page            int
	PageSize        int
	MLSStatusFilter string
	PropertyType    string
	PropertySubtype string
	County          string
}

// QueryPatch - частичное изменение QueryState. Поля-указатели позволяют
// отличить "не менять" от "сбросить в пустое значение".
type QueryPatch struct {
	SearchText      *string
	SortField       *SortField
	SortOrder       *SortOrder
	Page            *int
	MLSStatusFilter *string
	PropertyType    *string
	PropertySubtype *string
	County          *string
}

// NewQueryState возвращает состояние по умолчанию для вида с заданным
// размером страницы.
func NewQueryState(pageSize int) QueryState {
	return QueryState{
		SortField: SortFieldCreatedAt,
		SortOrder: SortOrderDesc,
		Page:      1,
		PageSize:  pageSize,
	}
}

// Apply вливает патч в состояние и возвращает новое значение.
// Инвариант: любое изменение, не являющееся явным переходом по страницам,
// сбрасывает Page в 1 - номер страницы от старого фильтра не имеет смысла
// для нового. Page всегда >= 1.
func (q QueryState) Apply(p QueryPatch) QueryState {
	next := q
	resetPage := false

	if p.SearchText != nil {
		next.SearchText = *p.SearchText
		resetPage = true
	}
	if p.SortField != nil {
		next.SortField = *p.SortField
		resetPage = true
	}
	if p.SortOrder != nil {
		next.SortOrder = *p.SortOrder
		resetPage = true
	}
	if p.MLSStatusFilter != nil {
		next.MLSStatusFilter = *p.MLSStatusFilter
		resetPage = true
	}
	if p.PropertyType != nil {
		next.PropertyType = *p.PropertyType
		resetPage = true
	}
	if p.PropertySubtype != nil {
		next.PropertySubtype = *p.PropertySubtype
		resetPage = true
	}
	if p.County != nil {
		next.County = *p.County
		resetPage = true
	}

	if resetPage {
		next.Page = 1
	}
	if p.Page != nil {
		next.Page = *p.Page
	}
	if next.Page < 1 {
		next.Page = 1
	}
	return next
}

// HasListingConstraints сообщает, задано ли хоть одно ограничение поиска.
// Без ограничений вид карты не выполняет запрос объявлений вовсе.
func (q QueryState) HasListingConstraints() bool {
	return strings.TrimSpace(q.SearchText) != "" ||
		q.MLSStatusFilter != "" ||
		q.PropertyType != "" ||
		q.PropertySubtype != "" ||
		q.County != ""
}

// Values - детерминированная проекция состояния в query-параметры URL.
// Значения, равные умолчаниям, опускаются, чтобы ссылки оставались
// короткими и стабильными. County в URL не попадает никогда.
func (q QueryState) Values() url.Values {
	v := url.Values{}
	if s := strings.TrimSpace(q.SearchText); s != "" {
		v.Set("search", s)
	}
	if q.SortField != SortFieldCreatedAt {
		v.Set("sortField", string(q.SortField))
	}
	if q.SortOrder != SortOrderDesc {
		v.Set("sortOrder", string(q.SortOrder))
	}
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.MLSStatusFilter != "" {
		v.Set("mlsStatus", q.MLSStatusFilter)
	}
	if q.PropertyType != "" {
		v.Set("propertyType", q.PropertyType)
	}
	if q.PropertySubtype != "" {
		v.Set("propertySubtype", q.PropertySubtype)
	}
	return v
}

// QueryStateFromValues восстанавливает состояние из query-параметров URL.
// Вызывается один раз при монтировании вида. Неизвестные и испорченные
// значения молча заменяются умолчаниями - битая ссылка не должна ломать
// страницу.
func QueryStateFromValues(v url.Values, pageSize int) QueryState {
	q := NewQueryState(pageSize)

	q.SearchText = v.Get("search")

	switch SortField(v.Get("sortField")) {
	case SortFieldOriginalPrice:
		q.SortField = SortFieldOriginalPrice
	}
	switch SortOrder(v.Get("sortOrder")) {
	case SortOrderAsc:
		q.SortOrder = SortOrderAsc
	}

	if raw := v.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page >= 1 {
			q.Page = page
		}
	}

	if v.Get("mlsStatus") == MLSStatusActive {
		q.MLSStatusFilter = MLSStatusActive
	}
	q.PropertyType = v.Get("propertyType")
	q.PropertySubtype = v.Get("propertySubtype")

	return q
}
