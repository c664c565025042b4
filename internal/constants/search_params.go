package constants

import (
	"time"

	"property-search-service/internal/core/domain"
)

// Размеры страницы фиксированы на вид: сетка показывает 12 карточек,
// карта грузит по 25 объявлений за раз.
const (
	GridPageSize = 12
	MapPageSize  = 25
)

// SuggestionDebounce - окно тишины после последнего нажатия клавиши,
// по истечении которого уходит запрос автодополнения.
const SuggestionDebounce = 300 * time.Millisecond

// AutoRefreshInterval - период фонового повтора текущего replace-запроса,
// подхватывающего изменения данных на бэкенде.
const AutoRefreshInterval = 5 * time.Minute

// Точность geohash-ячеек: маркеры группируются мелко, круги округов -
// крупно.
const (
	MarkerCellPrecision = 7
	CountyCellPrecision = 5
)

// DefaultMapCenter - центр карты, когда нет ни маркеров, ни выбранного
// округа (Нью-Йорк).
var DefaultMapCenter = domain.Coordinates{Latitude: 40.7128, Longitude: -74.0060}
