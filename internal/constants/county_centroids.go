package constants

import (
	"golang.org/x/text/cases"

	"property-search-service/internal/core/domain"
)

// countyCentroids - статическая таблица заранее геокодированных центров
// округов штата Нью-Йорк. Круги на карте рисуются только для округов,
// которые есть и здесь, и в ответе /properties/all-counties.
var countyCentroids = map[string]domain.Coordinates{
	"Kings (Brooklyn)":        {Latitude: 40.6782, Longitude: -73.9442},
	"Queens":                  {Latitude: 40.7282, Longitude: -73.7949},
	"New York (Manhattan)":    {Latitude: 40.7831, Longitude: -73.9712},
	"Bronx":                   {Latitude: 40.8448, Longitude: -73.8648},
	"Richmond (Staten Island)": {Latitude: 40.5795, Longitude: -74.1502},
	"Nassau":                  {Latitude: 40.7290, Longitude: -73.5892},
	"Suffolk":                 {Latitude: 40.9170, Longitude: -72.8631},
	"Westchester":             {Latitude: 41.1220, Longitude: -73.7949},
	"Rockland":                {Latitude: 41.1519, Longitude: -74.0357},
	"Orange":                  {Latitude: 41.3912, Longitude: -74.3118},
	"Dutchess":                {Latitude: 41.7784, Longitude: -73.7478},
	"Putnam":                  {Latitude: 41.4351, Longitude: -73.7949},
	"Erie":                    {Latitude: 42.8802, Longitude: -78.8785},
	"Monroe":                  {Latitude: 43.1610, Longitude: -77.6109},
	"Albany":                  {Latitude: 42.6526, Longitude: -73.7562},
	"Onondaga":                {Latitude: 43.0481, Longitude: -76.1474},
}

var countyFolder = cases.Fold()

// foldedCentroids индексирует таблицу по сведённому регистру, чтобы
// "queens" и "Queens" из разных источников совпадали.
var foldedCentroids = func() map[string]countyEntry {
	m := make(map[string]countyEntry, len(countyCentroids))
	for name, center := range countyCentroids {
		m[countyFolder.String(name)] = countyEntry{name: name, center: center}
	}
	return m
}()

type countyEntry struct {
	name   string
	center domain.Coordinates
}

// CentroidFor возвращает канонское имя округа и его центр.
// Сопоставление нечувствительно к регистру.
func CentroidFor(county string) (string, domain.Coordinates, bool) {
	entry, ok := foldedCentroids[countyFolder.String(county)]
	if !ok {
		return "", domain.Coordinates{}, false
	}
	return entry.name, entry.center, true
}
