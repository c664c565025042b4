package domain

// Coordinates - пара широта/долгота.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// MapMarker - проекция объявления на карту. Существует только для
// объявлений с известными координатами и пересоздаётся при каждом
// изменении коллекции; сам по себе никогда не мутирует.
type MapMarker struct {
	ID          string
	ListingKey  string
	Title       string
	Price       float64
	Address     string
	Coordinates Coordinates
	// Cell - geohash-ключ ячейки, по которому виджет карты группирует
	// соседние маркеры.
	Cell string
}

// CountyCircle - статический кластер-маркер округа. Показывается на карте
// до того, как выбран конкретный округ и выполнен первый запрос.
type CountyCircle struct {
	County string
	Center Coordinates
	Cell   string
}
