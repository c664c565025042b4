package port

import (
	"net/url"

	"property-search-service/internal/core/domain"
)

// ViewSinkPort получает срезы состояния сессии для перерисовки
// списка/сетки. Реализация - дело слоя отображения.
type ViewSinkPort interface {
	RenderSession(snapshot domain.SessionSnapshot)
}

// SuggestionSinkPort получает результаты автодополнения.
type SuggestionSinkPort interface {
	RenderSuggestions(set domain.SuggestionSet)
	ClearSuggestions()
}

// MapWidgetPort - чёрный ящик виджета карты: принимает маркеры и центр,
// о кликах сообщает обратно через методы сессии.
type MapWidgetPort interface {
	SetMarkers(markers []domain.MapMarker)
	SetCenter(center domain.Coordinates)
	SetCountyCircles(circles []domain.CountyCircle)
}

// URLSinkPort - адресная строка как приёмник состояния. Связь строго
// односторонняя: состояние проецируется в URL, обратно URL читается
// только при монтировании.
type URLSinkPort interface {
	ReplaceQuery(values url.Values)
}

// NavigatorPort выполняет переходы, уводящие с текущей страницы.
type NavigatorPort interface {
	OpenListing(listingKey string)
	RedirectToLogin()
}
