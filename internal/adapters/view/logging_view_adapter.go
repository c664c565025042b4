package view_adapter

import (
	"net/url"

	"property-search-service/internal/core/domain"
	"property-search-service/internal/core/port"
)

// LoggingViewAdapter - безголовая реализация всех портов отображения.
// Каждое событие просто уходит в лог; используется консольным раннером
// и смоук-прогонами против живого бэкенда.
type LoggingViewAdapter struct {
	logger port.LoggerPort
}

func NewLoggingViewAdapter(logger port.LoggerPort) *LoggingViewAdapter {
	return &LoggingViewAdapter{
		logger: logger.WithFields(port.Fields{"component": "LoggingView"}),
	}
}

func (a *LoggingViewAdapter) RenderSession(s domain.SessionSnapshot) {
	a.logger.Info("Session snapshot", port.Fields{
		"phase":         s.Phase,
		"page":          s.Query.Page,
		"listings":      len(s.Listings),
		"total_items":   s.Meta.TotalItems,
		"can_load_more": s.CanLoadMore,
		"error":         s.ErrorMessage,
	})
}

func (a *LoggingViewAdapter) RenderSuggestions(set domain.SuggestionSet) {
	a.logger.Info("Suggestions", port.Fields{
		"cities":     len(set.Cities),
		"counties":   len(set.Counties),
		"properties": len(set.Properties),
	})
}

func (a *LoggingViewAdapter) ClearSuggestions() {
	a.logger.Debug("Suggestions cleared", nil)
}

func (a *LoggingViewAdapter) SetMarkers(markers []domain.MapMarker) {
	a.logger.Info("Map markers", port.Fields{"markers": len(markers)})
}

func (a *LoggingViewAdapter) SetCenter(center domain.Coordinates) {
	a.logger.Debug("Map center", port.Fields{
		"latitude":  center.Latitude,
		"longitude": center.Longitude,
	})
}

func (a *LoggingViewAdapter) SetCountyCircles(circles []domain.CountyCircle) {
	a.logger.Info("County circles", port.Fields{"circles": len(circles)})
}

func (a *LoggingViewAdapter) ReplaceQuery(values url.Values) {
	a.logger.Debug("URL updated", port.Fields{"query": values.Encode()})
}

func (a *LoggingViewAdapter) OpenListing(listingKey string) {
	a.logger.Info("Navigate to listing", port.Fields{"listing_key": listingKey})
}

func (a *LoggingViewAdapter) RedirectToLogin() {
	a.logger.Info("Navigate to login", nil)
}
