package usecase

import (
	"github.com/mmcloughlin/geohash"

	"property-search-service/internal/constants"
	"property-search-service/internal/core/domain"
)

// ProjectMarkers - чистая проекция коллекции объявлений в маркеры карты.
// Объявления без координат отбрасываются; порядок коллекции сохраняется.
// Функция свободна от побочных эффектов: два вызова на одной коллекции
// дают идентичный результат.
func ProjectMarkers(listings []domain.ListingSummary) []domain.MapMarker {
	markers := make([]domain.MapMarker, 0, len(listings))
	for _, l := range listings {
		if !l.HasCoordinates() {
			continue
		}
		coords := domain.Coordinates{Latitude: *l.Latitude, Longitude: *l.Longitude}
		markers = append(markers, domain.MapMarker{
			ID:          l.ID,
			ListingKey:  l.ListingKey,
			Title:       l.Title,
			Price:       l.OriginalPrice,
			Address:     l.Address,
			Coordinates: coords,
			Cell:        geohash.EncodeWithPrecision(coords.Latitude, coords.Longitude, constants.MarkerCellPrecision),
		})
	}
	return markers
}

// SelectCenter выбирает центр карты: координаты первого маркера, иначе
// центр выбранного округа, иначе фиксированный центр по умолчанию.
func SelectCenter(markers []domain.MapMarker, county string) domain.Coordinates {
	if len(markers) > 0 {
		return markers[0].Coordinates
	}
	if county != "" {
		if _, center, ok := constants.CentroidFor(county); ok {
			return center
		}
	}
	return constants.DefaultMapCenter
}
